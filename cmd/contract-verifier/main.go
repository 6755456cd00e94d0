package main

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"

	pkgerrors "github.com/pkg/errors"
	"github.com/urfave/cli/v2"

	"github.com/veritract/contract-verifier-go/pkg/config"
	"github.com/veritract/contract-verifier-go/pkg/contract"
	"github.com/veritract/contract-verifier-go/pkg/logger"
	"github.com/veritract/contract-verifier-go/pkg/merkle"
	"github.com/veritract/contract-verifier-go/pkg/persistence"
	"github.com/veritract/contract-verifier-go/pkg/persistence/badger"
	"github.com/veritract/contract-verifier-go/pkg/persistence/memory"
	"github.com/veritract/contract-verifier-go/pkg/persistence/redis"
	"github.com/veritract/contract-verifier-go/pkg/registry"
)

// proofEnvelope is the JSON document emitted by `prove` and consumed by
// `verify`: everything needed to re-verify a clause independently.
type proofEnvelope struct {
	Clause string        `json:"clause"`
	Index  int           `json:"index"`
	Target merkle.Digest `json:"target"`
	Root   merkle.Digest `json:"root"`
	Proof  merkle.Proof  `json:"proof"`
}

func main() {
	app := &cli.App{
		Name:  "contract-verifier",
		Usage: "Merkle-tree integrity fingerprints for contract documents",
		Description: `Builds a merkle tree over the clauses of a contract document (one clause
per non-empty line) and works with the resulting fingerprints:

- print the root fingerprint summarizing the whole document
- compare two document versions clause by clause
- prove that one clause belongs to a document without revealing the rest
- verify such a proof against a root
- seal fingerprints into a record store and check later versions against them`,
		Version: "1.0.0",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "store-type",
				Value:   string(config.StoreTypeMemory),
				Usage:   "Record store backend: " + config.SupportedStoreTypesString(),
				EnvVars: []string{config.EnvVerifierStoreType},
			},
			&cli.StringFlag{
				Name:    "store-path",
				Value:   "./verifier-data",
				Usage:   "Data directory for the badger store",
				EnvVars: []string{config.EnvVerifierStorePath},
			},
			&cli.StringFlag{
				Name:    "redis-address",
				Usage:   "Redis server address (host:port)",
				EnvVars: []string{config.EnvVerifierRedisAddress},
			},
			&cli.StringFlag{
				Name:    "redis-password",
				Usage:   "Redis password",
				EnvVars: []string{config.EnvVerifierRedisPassword},
			},
			&cli.IntFlag{
				Name:    "redis-db",
				Value:   0,
				Usage:   "Redis database number (0-15)",
				EnvVars: []string{config.EnvVerifierRedisDB},
			},
			&cli.StringFlag{
				Name:    "redis-prefix",
				Usage:   "Optional key prefix for multi-tenant Redis setups",
				EnvVars: []string{config.EnvVerifierRedisPrefix},
			},
			&cli.BoolFlag{
				Name:    "verbose",
				Usage:   "Enable verbose logging",
				EnvVars: []string{config.EnvVerifierVerbose},
			},
		},
		Commands: []*cli.Command{
			{
				Name:      "root",
				Usage:     "Print the merkle root of a contract document",
				ArgsUsage: "FILE",
				Action:    runRoot,
			},
			{
				Name:      "compare",
				Usage:     "Compare two contract versions clause by clause",
				ArgsUsage: "FILE1 FILE2",
				Action:    runCompare,
			},
			{
				Name:      "prove",
				Usage:     "Generate a membership proof for one clause",
				ArgsUsage: "FILE INDEX",
				Action:    runProve,
			},
			{
				Name:      "verify",
				Usage:     "Verify a proof envelope produced by prove",
				ArgsUsage: "PROOF_FILE",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "root",
						Usage: "Expected root (overrides the envelope's root)",
					},
				},
				Action: runVerify,
			},
			{
				Name:      "seal",
				Usage:     "Seal a document's fingerprint into the record store",
				ArgsUsage: "FILE",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "name",
						Usage: "Record name (defaults to the file's base name)",
					},
				},
				Action: runSeal,
			},
			{
				Name:      "check",
				Usage:     "Check a document against a sealed record",
				ArgsUsage: "FILE",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "name",
						Usage: "Record name (defaults to the file's base name)",
					},
				},
				Action: runCheck,
			},
			{
				Name:   "list",
				Usage:  "List sealed records",
				Action: runList,
			},
			{
				Name:      "forget",
				Usage:     "Remove a sealed record",
				ArgsUsage: "NAME",
				Action:    runForget,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatalf("Application error: %v", err)
	}
}

func runRoot(c *cli.Context) error {
	if c.NArg() != 1 {
		return cli.Exit("usage: contract-verifier root FILE", 2)
	}

	doc, err := loadDocument(c.Args().Get(0))
	if err != nil {
		return err
	}

	fmt.Printf("%s\n", doc.Root())
	return nil
}

func runCompare(c *cli.Context) error {
	if c.NArg() != 2 {
		return cli.Exit("usage: contract-verifier compare FILE1 FILE2", 2)
	}

	docA, err := loadDocument(c.Args().Get(0))
	if err != nil {
		return err
	}
	docB, err := loadDocument(c.Args().Get(1))
	if err != nil {
		return err
	}

	result := contract.Compare(docA, docB)

	fmt.Printf("Root %s: %s\n", docA.Title, result.RootA)
	fmt.Printf("Root %s: %s\n", docB.Title, result.RootB)

	if result.Identical {
		fmt.Println("Status: identical")
		return nil
	}

	fmt.Println("Status: different")
	for _, status := range result.Clauses {
		if status.Match {
			fmt.Printf("Clause %d: match\n", status.Index+1)
			continue
		}
		fmt.Printf("Clause %d: difference\n", status.Index+1)
		fmt.Printf("  %s: %s\n", docA.Title, status.ClauseA)
		fmt.Printf("  %s: %s\n", docB.Title, status.ClauseB)
	}
	for i, clause := range result.AdditionalA {
		fmt.Printf("Clause %d: only in %s: %s\n", len(result.Clauses)+i+1, docA.Title, clause)
	}
	for i, clause := range result.AdditionalB {
		fmt.Printf("Clause %d: only in %s: %s\n", len(result.Clauses)+i+1, docB.Title, clause)
	}

	return cli.Exit("", 1)
}

func runProve(c *cli.Context) error {
	if c.NArg() != 2 {
		return cli.Exit("usage: contract-verifier prove FILE INDEX", 2)
	}

	doc, err := loadDocument(c.Args().Get(0))
	if err != nil {
		return err
	}

	index, err := strconv.Atoi(c.Args().Get(1))
	if err != nil {
		return pkgerrors.Wrapf(err, "invalid clause index %q", c.Args().Get(1))
	}
	// Clause numbers are 1-based on the command line
	index--

	proof, err := doc.ProveClause(index)
	if err != nil {
		return err
	}

	envelope := proofEnvelope{
		Clause: doc.Clauses[index],
		Index:  index,
		Target: doc.Digests[index],
		Root:   doc.Root(),
		Proof:  proof,
	}

	out, err := json.MarshalIndent(envelope, "", "  ")
	if err != nil {
		return pkgerrors.Wrap(err, "failed to encode proof envelope")
	}

	fmt.Println(string(out))
	return nil
}

func runVerify(c *cli.Context) error {
	if c.NArg() != 1 {
		return cli.Exit("usage: contract-verifier verify PROOF_FILE", 2)
	}

	path := c.Args().Get(0)
	data, err := os.ReadFile(path)
	if err != nil {
		return pkgerrors.Wrapf(err, "failed to read proof file %s", path)
	}

	var envelope proofEnvelope
	if err := json.Unmarshal(data, &envelope); err != nil {
		return pkgerrors.Wrapf(err, "failed to decode proof file %s", path)
	}

	expectedRoot := envelope.Root
	if override := c.String("root"); override != "" {
		expectedRoot = merkle.Digest(override)
	}

	if merkle.VerifyProof(envelope.Proof, envelope.Target, expectedRoot) {
		fmt.Println("Verification: PASSED")
		return nil
	}

	fmt.Println("Verification: FAILED")
	return cli.Exit("", 1)
}

func runSeal(c *cli.Context) error {
	if c.NArg() != 1 {
		return cli.Exit("usage: contract-verifier seal FILE", 2)
	}

	path := c.Args().Get(0)
	doc, err := loadDocument(path)
	if err != nil {
		return err
	}

	reg, cleanup, err := openRegistry(c)
	if err != nil {
		return err
	}
	defer cleanup()

	name := c.String("name")
	if name == "" {
		name = filepath.Base(path)
	}

	record, err := reg.Seal(name, doc)
	if err != nil {
		return err
	}

	fmt.Printf("Sealed %q (%d clauses)\n", record.Name, record.ClauseCount)
	fmt.Printf("Root: %s\n", record.Root)
	return nil
}

func runCheck(c *cli.Context) error {
	if c.NArg() != 1 {
		return cli.Exit("usage: contract-verifier check FILE", 2)
	}

	path := c.Args().Get(0)
	doc, err := loadDocument(path)
	if err != nil {
		return err
	}

	reg, cleanup, err := openRegistry(c)
	if err != nil {
		return err
	}
	defer cleanup()

	name := c.String("name")
	if name == "" {
		name = filepath.Base(path)
	}

	result, err := reg.Check(name, doc)
	if err != nil {
		return err
	}

	if result.RootMatch {
		fmt.Printf("Status: %q matches its sealed fingerprint\n", name)
		return nil
	}

	fmt.Printf("Status: %q DIFFERS from its sealed fingerprint\n", name)
	for _, idx := range result.DriftedClauses {
		fmt.Printf("  Clause %d drifted\n", idx+1)
	}
	switch {
	case result.ClauseCountDelta > 0:
		fmt.Printf("  %d clause(s) added\n", result.ClauseCountDelta)
	case result.ClauseCountDelta < 0:
		fmt.Printf("  %d clause(s) removed\n", -result.ClauseCountDelta)
	}
	return cli.Exit("", 1)
}

func runList(c *cli.Context) error {
	reg, cleanup, err := openRegistry(c)
	if err != nil {
		return err
	}
	defer cleanup()

	records, err := reg.List()
	if err != nil {
		return err
	}

	if len(records) == 0 {
		fmt.Println("No sealed records")
		return nil
	}

	for _, record := range records {
		fmt.Printf("%-30s %3d clauses  root=%s\n", record.Name, record.ClauseCount, record.Root)
	}
	return nil
}

func runForget(c *cli.Context) error {
	if c.NArg() != 1 {
		return cli.Exit("usage: contract-verifier forget NAME", 2)
	}

	reg, cleanup, err := openRegistry(c)
	if err != nil {
		return err
	}
	defer cleanup()

	name := c.Args().Get(0)
	if err := reg.Forget(name); err != nil {
		return err
	}

	fmt.Printf("Forgot %q\n", name)
	return nil
}

// loadDocument reads a contract file and parses it into a Document titled by
// its base name.
func loadDocument(path string) (*contract.Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, pkgerrors.Wrapf(err, "failed to read contract file %s", path)
	}
	return contract.NewDocument(filepath.Base(path), string(data)), nil
}

// parseConfig builds the verifier config from flags/environment.
func parseConfig(c *cli.Context) (*config.VerifierConfig, error) {
	cfg := &config.VerifierConfig{
		StoreType:     config.StoreType(c.String("store-type")),
		StorePath:     c.String("store-path"),
		RedisAddress:  c.String("redis-address"),
		RedisPassword: c.String("redis-password"),
		RedisDB:       c.Int("redis-db"),
		RedisPrefix:   c.String("redis-prefix"),
		Verbose:       c.Bool("verbose"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, pkgerrors.Wrap(err, "configuration error")
	}
	return cfg, nil
}

// openRegistry opens the configured record store and wraps it in a Registry.
// The returned cleanup closes the store.
func openRegistry(c *cli.Context) (*registry.Registry, func(), error) {
	cfg, err := parseConfig(c)
	if err != nil {
		return nil, nil, err
	}

	zapLogger, err := logger.NewLogger(&logger.LoggerConfig{Debug: cfg.Verbose})
	if err != nil {
		return nil, nil, pkgerrors.Wrap(err, "failed to create logger")
	}

	var store persistence.IRecordStore
	switch cfg.StoreType {
	case config.StoreTypeMemory:
		store = memory.NewMemoryStore()
	case config.StoreTypeBadger:
		store, err = badger.NewBadgerStore(cfg.StorePath, zapLogger)
	case config.StoreTypeRedis:
		store, err = redis.NewRedisStore(&redis.RedisConfig{
			Address:   cfg.RedisAddress,
			Password:  cfg.RedisPassword,
			DB:        cfg.RedisDB,
			KeyPrefix: cfg.RedisPrefix,
		}, zapLogger)
	}
	if err != nil {
		return nil, nil, pkgerrors.Wrapf(err, "failed to open %s record store", cfg.StoreType)
	}

	if err := store.HealthCheck(); err != nil {
		_ = store.Close()
		return nil, nil, pkgerrors.Wrap(err, "record store failed health check")
	}

	reg := registry.NewRegistry(store, zapLogger)
	cleanup := func() {
		_ = store.Close()
		_ = zapLogger.Sync()
	}
	return reg, cleanup, nil
}
