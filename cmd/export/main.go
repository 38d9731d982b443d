package main

import (
	"bufio"
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/pracor/pracor/internal/export"
	"github.com/pracor/pracor/internal/setup"
	"github.com/pracor/pracor/internal/setup/telemetry"
	"github.com/urfave/cli/v3"
	"go.uber.org/zap"
)

// ExportLogDir specifies where export log files are stored.
const ExportLogDir = "logs/export_logs"

func main() {
	if err := run(); err != nil {
		log.Printf("Error: %v", err)
		os.Exit(1)
	}
}

func run() error {
	app := &cli.Command{
		Name:  "export",
		Usage: "Export company scores and anonymized reviews",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Value:   "exports",
				Usage:   "Base output directory for export files",
			},
			&cli.StringSliceFlag{
				Name:    "format",
				Aliases: []string{"f"},
				Usage:   "Formats to write (sqlite, csv, jsonl), all when omitted",
			},
			&cli.StringFlag{
				Name:    "salt",
				Aliases: []string{"s"},
				Usage:   "Salt for hashing review authors",
			},
			&cli.StringFlag{
				Name:    "export-version",
				Aliases: []string{"v"},
				Usage:   "Export version",
			},
			&cli.StringFlag{
				Name:    "description",
				Aliases: []string{"d"},
				Usage:   "Export description",
			},
			&cli.StringFlag{
				Name:    "hash-type",
				Aliases: []string{"t"},
				Usage:   "Hash algorithm to use (argon2id or sha256)",
			},
			&cli.IntFlag{
				Name:    "concurrency",
				Aliases: []string{"c"},
				Usage:   "Number of concurrent hash operations",
				Value:   1,
			},
			&cli.UintFlag{
				Name:    "iterations",
				Aliases: []string{"i"},
				Usage:   "Number of hash iterations",
			},
			&cli.UintFlag{
				Name:    "memory",
				Aliases: []string{"m"},
				Usage:   "Memory to use for Argon2id in MB",
			},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			config, err := exportConfig(c, bufio.NewReader(os.Stdin))
			if err != nil {
				return fmt.Errorf("failed to get export configuration: %w", err)
			}

			app, err := setup.InitializeApp(ctx, telemetry.ServiceExport, ExportLogDir)
			if err != nil {
				return fmt.Errorf("failed to initialize application: %w", err)
			}
			defer app.Cleanup(ctx)

			formats := make([]export.Format, 0, len(c.StringSlice("format")))
			for _, f := range c.StringSlice("format") {
				formats = append(formats, export.Format(strings.ToLower(f)))
			}

			outDir := filepath.Join(c.String("output"), time.Now().UTC().Format("2006-01-02_150405"))
			exporter := export.New(app.DB, outDir, config, app.Logger, formats...)

			if err := exporter.ExportAll(ctx); err != nil {
				return fmt.Errorf("failed to export data: %w", err)
			}

			app.Logger.Info("Export completed", zap.String("outDir", outDir))

			return nil
		},
	}

	return app.Run(context.Background(), os.Args)
}

// exportConfig reads the configuration from flags and prompts for what is missing.
func exportConfig(c *cli.Command, reader *bufio.Reader) (*export.Config, error) {
	config := &export.Config{
		ExportVersion: c.String("export-version"),
		Salt:          c.String("salt"),
		Description:   c.String("description"),
		HashType:      export.HashType(c.String("hash-type")),
		Concurrency:   int(c.Int("concurrency")),
		Iterations:    uint32(c.Uint("iterations")), //nolint:gosec // -
		Memory:        uint32(c.Uint("memory")),     //nolint:gosec // -
	}

	hashType := string(config.HashType)

	prompts := []struct {
		value    *string
		prompt   string
		defValue string
	}{
		{&config.ExportVersion, "Enter export version", time.Now().UTC().Format("2006.01.02")},
		{&config.Salt, "Enter salt for hashing review authors", ""},
		{&config.Description, "Enter export description", "Pracor company scores"},
		{&hashType, "Enter hash type (argon2id/sha256)", string(export.HashTypeSHA256)},
	}

	for _, p := range prompts {
		if *p.value != "" {
			continue
		}

		val, err := promptString(reader, p.prompt, p.defValue)
		if err != nil {
			return nil, err
		}
		*p.value = val
	}

	config.HashType = export.HashType(hashType)
	if !config.HashType.Valid() {
		return nil, fmt.Errorf("%w: %s", export.ErrUnsupportedHash, hashType)
	}

	if config.Iterations == 0 {
		defaultIter := "1"
		if config.HashType == export.HashTypeArgon2id {
			defaultIter = "16"
		}

		iter, err := promptUint32(reader, "Enter hash iterations", defaultIter)
		if err != nil {
			return nil, fmt.Errorf("failed to read iterations: %w", err)
		}
		config.Iterations = iter
	}

	if config.Memory == 0 && config.HashType == export.HashTypeArgon2id {
		mem, err := promptUint32(reader, "Enter memory usage in MB for Argon2id", "16")
		if err != nil {
			return nil, fmt.Errorf("failed to read memory: %w", err)
		}
		config.Memory = mem
	}

	return config, nil
}

func promptString(reader *bufio.Reader, prompt, defValue string) (string, error) {
	if defValue != "" {
		prompt = fmt.Sprintf("%s [%s]", prompt, defValue)
	}
	fmt.Print(prompt + ": ")

	input, err := reader.ReadString('\n')
	if err != nil {
		return "", fmt.Errorf("failed to read input: %w", err)
	}

	if val := strings.TrimSpace(input); val != "" {
		return val, nil
	}

	return defValue, nil
}

func promptUint32(reader *bufio.Reader, prompt, defValue string) (uint32, error) {
	val, err := promptString(reader, prompt, defValue)
	if err != nil {
		return 0, err
	}

	num, err := strconv.ParseUint(val, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid number: %w", err)
	}

	return uint32(num), nil
}
