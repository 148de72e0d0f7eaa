/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sort"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/suparena/rifcsharvest"
	"github.com/suparena/rifcsharvest/internal/config"
	"github.com/suparena/rifcsharvest/internal/logging"
	"github.com/suparena/rifcsharvest/internal/metrics"
	"github.com/suparena/rifcsharvest/notify"
	"github.com/suparena/rifcsharvest/objectstore"
)

var rootCmd = &cobra.Command{
	Use:   "rifcs-harvest",
	Short: "Harvest RIF-CS registry objects into a digital object store",
	Long: `rifcs-harvest reads a RIF-CS file, maps every registry object to a flat JSON document
using the configured field mapping and upserts it into the object store. Stored objects are
flagged render-pending for downstream renderers.`,
	SilenceUsage: true,
}

func main() {
	cobra.OnInitialize(initConfig)
	addPersistentFlags()
	registerCommands()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func initConfig() {
	_ = godotenv.Load()
	viper.SetEnvPrefix("RIFCS_HARVEST")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()
}

func addPersistentFlags() {
	rootCmd.PersistentFlags().StringP("config", "c", "", "harvester config file")
	rootCmd.PersistentFlags().StringP("file", "f", "", "RIF-CS file (overrides harvester.xml.fileLocation)")
	rootCmd.PersistentFlags().String("backend", "", fmt.Sprintf("storage backend %v", objectstore.Backends()))
	rootCmd.PersistentFlags().String("log-level", "", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().String("log-format", "", "log format (text, json)")
	rootCmd.PersistentFlags().Bool("json", false, "output JSON")
	for _, name := range []string{"config", "file", "backend", "log-level", "log-format", "json"} {
		_ = viper.BindPFlag(name, rootCmd.PersistentFlags().Lookup(name))
	}
}

func registerCommands() {
	rootCmd.AddCommand(harvestCmd())
	rootCmd.AddCommand(showCmd())
	rootCmd.AddCommand(deleteCmd())
	rootCmd.AddCommand(versionCmd())
}

// overrides are the command-line and environment values applied on top of the config file.
type overrides struct {
	File      string
	Backend   string
	LogLevel  string
	LogFormat string
}

func loadConfig(path string, o overrides) (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	if path != "" {
		cfg, err = config.FromFile(path)
	} else {
		cfg, err = config.FromYAML(nil)
	}
	if err != nil {
		return nil, err
	}

	if o.File != "" {
		cfg.Harvester.XML.FileLocation = o.File
	}
	if o.Backend != "" {
		cfg.Storage.Backend = o.Backend
	}
	if o.LogLevel != "" {
		cfg.Logging.Level = o.LogLevel
	}
	if o.LogFormat != "" {
		cfg.Logging.Format = o.LogFormat
	}
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func currentConfig() (*config.Config, error) {
	cfg, err := loadConfig(viper.GetString("config"), overrides{
		File:      viper.GetString("file"),
		Backend:   viper.GetString("backend"),
		LogLevel:  viper.GetString("log-level"),
		LogFormat: viper.GetString("log-format"),
	})
	if err != nil {
		return nil, err
	}
	logging.Setup(cfg.Logging.Level, cfg.Logging.Format)
	return cfg, nil
}

func withStore(ctx context.Context, cfg *config.Config, fn func(*objectstore.Storage) error) error {
	store, err := objectstore.Open(ctx, cfg.Storage, objectstore.WithLogger(slog.Default()))
	if err != nil {
		return err
	}
	defer func() {
		if err := store.Close(); err != nil {
			slog.Error("error closing object store", "error", err)
		}
	}()
	return fn(store)
}

func harvestCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "harvest",
		Short: "Harvest the configured RIF-CS file",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := currentConfig()
			if err != nil {
				return err
			}
			fields, err := cfg.MappingTable()
			if err != nil {
				return err
			}
			cats, err := cfg.Categories()
			if err != nil {
				return err
			}

			reg := prometheus.NewRegistry()
			opts := []rifcsharvest.Option{
				rifcsharvest.WithLogger(slog.Default()),
				rifcsharvest.WithMetrics(metrics.New(reg)),
			}
			if len(cfg.Notify.Kafka.Brokers) > 0 {
				pub, err := notify.NewKafkaPublisher(cfg.Notify.Kafka)
				if err != nil {
					return err
				}
				defer pub.Close()
				opts = append(opts, rifcsharvest.WithPublisher(pub))
			}

			return withStore(cmd.Context(), cfg, func(store *objectstore.Storage) error {
				h, err := rifcsharvest.New(rifcsharvest.Config{
					FileLocation:   cfg.Harvester.XML.FileLocation,
					PayloadID:      cfg.Harvester.XML.PayloadID,
					RecordIDPrefix: cfg.Harvester.XML.RecordIDPrefix,
					IgnoreFields:   cfg.Harvester.XML.IgnoreFields,
					IncludedFields: cfg.Harvester.XML.IncludedFields,
					Table:          fields,
					Categories:     cats,
				}, store, opts...)
				if err != nil {
					return err
				}

				results, herr := h.Harvest(cmd.Context())
				if path := cfg.Metrics.Textfile; path != "" {
					if err := metrics.WriteTextfile(path, reg); err != nil {
						slog.Error("error writing metrics textfile", "path", path, "error", err)
					}
				}
				if herr != nil {
					return herr
				}
				return printResults(os.Stdout, results)
			})
		},
	}
}

func printResults(w io.Writer, results []rifcsharvest.Result) error {
	if viper.GetBool("json") {
		return printJSON(w, results)
	}
	tw := table.NewWriter()
	tw.SetOutputMirror(w)
	tw.AppendHeader(table.Row{"Seq", "Object ID", "Record ID", "Class", "Key", "Created"})
	for _, r := range results {
		tw.AppendRow(table.Row{r.Seq, r.ObjectID, r.RecordID, r.Class, r.Key, r.Created})
	}
	tw.AppendFooter(table.Row{"", "", "", "", "Total", len(results)})
	tw.Render()
	return nil
}

func showCmd() *cobra.Command {
	var payloadID string
	cmd := &cobra.Command{
		Use:   "show <oid>",
		Short: "Show a stored object",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := currentConfig()
			if err != nil {
				return err
			}
			if payloadID == "" {
				payloadID = cfg.Harvester.XML.PayloadID
			}
			return withStore(cmd.Context(), cfg, func(store *objectstore.Storage) error {
				obj, err := store.GetObject(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				defer obj.Close(cmd.Context())

				content := ""
				if p, err := obj.Payload(payloadID); err == nil {
					rc, err := p.Open()
					if err != nil {
						return err
					}
					b, err := io.ReadAll(rc)
					rc.Close()
					if err != nil {
						return err
					}
					content = string(b)
				}

				if viper.GetBool("json") {
					out := map[string]any{
						"id":         obj.ID(),
						"sourceId":   obj.SourceID(),
						"payloads":   obj.PayloadIDs(),
						"properties": obj.Properties(),
					}
					if content != "" {
						out["payload"] = json.RawMessage(content)
					}
					return printJSON(os.Stdout, out)
				}

				tw := table.NewWriter()
				tw.SetOutputMirror(os.Stdout)
				tw.AppendHeader(table.Row{"Field", "Value"})
				tw.AppendRow(table.Row{"id", obj.ID()})
				tw.AppendRow(table.Row{"sourceId", obj.SourceID()})
				tw.AppendRow(table.Row{"payloads", strings.Join(obj.PayloadIDs(), ", ")})
				props := obj.Properties()
				keys := make([]string, 0, len(props))
				for k := range props {
					keys = append(keys, k)
				}
				sort.Strings(keys)
				for _, k := range keys {
					tw.AppendRow(table.Row{"property " + k, props[k]})
				}
				tw.Render()
				if content != "" {
					fmt.Println(content)
				}
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&payloadID, "payload", "", "payload to print (default harvester.xml.payloadId)")
	return cmd
}

func deleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <oid>",
		Short: "Delete a stored object",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := currentConfig()
			if err != nil {
				return err
			}
			return withStore(cmd.Context(), cfg, func(store *objectstore.Storage) error {
				if err := store.RemoveObject(cmd.Context(), args[0]); err != nil {
					return err
				}
				fmt.Printf("deleted %s\n", args[0])
				return nil
			})
		},
	}
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		RunE: func(cmd *cobra.Command, args []string) error {
			info := rifcsharvest.GetVersionInfo()
			if viper.GetBool("json") {
				return printJSON(os.Stdout, info)
			}
			fmt.Printf("rifcs-harvest version %s\n", info.Version)
			fmt.Printf("Git commit: %s\n", info.GitCommit)
			fmt.Printf("Build date: %s\n", info.BuildDate)
			fmt.Printf("Go version: %s\n", info.GoVersion)
			return nil
		},
	}
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
