package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aretw0/canvasdoc"
	"github.com/aretw0/canvasdoc/pkg/ports"
)

var storeCmd = &cobra.Command{
	Use:   "store",
	Short: "Manage documents in the configured store",
	Long: `Works against the store named in the config (store.kind): a directory of
files, process memory or Redis. Redaction, encryption and locking are applied
as configured.`,
}

// withStore opens the configured store for the duration of fn.
func withStore(fn func(ctx context.Context, store ports.DocumentStore) error) error {
	store, closeFn, err := canvasdoc.OpenStore(cfg)
	if err != nil {
		return err
	}
	err = fn(context.Background(), store)
	return errors.Join(err, closeFn())
}

var storeListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored document ids",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withStore(func(ctx context.Context, store ports.DocumentStore) error {
			ids, err := store.List(ctx)
			if err != nil {
				return err
			}
			for _, id := range ids {
				fmt.Fprintln(cmd.OutOrStdout(), id)
			}
			return nil
		})
	},
}

var storePutCmd = &cobra.Command{
	Use:   "put <id> <file>",
	Short: "Save a document file under id",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		format, _ := cmd.Flags().GetString("format")
		doc, err := readDocument(cmd.InOrStdin(), args[1], format)
		if err != nil {
			return err
		}
		return withStore(func(ctx context.Context, store ports.DocumentStore) error {
			if err := store.Save(ctx, args[0], doc); err != nil {
				return err
			}
			logger.Info("document saved", "id", args[0], "store", cfg.Store.Kind)
			return nil
		})
	},
}

var storeGetCmd = &cobra.Command{
	Use:   "get <id>",
	Short: "Print a stored document",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		format, _ := cmd.Flags().GetString("format")
		return withStore(func(ctx context.Context, store ports.DocumentStore) error {
			doc, err := store.Load(ctx, args[0])
			if err != nil {
				return err
			}
			return writeDocument(cmd.OutOrStdout(), "", format, doc)
		})
	},
}

var storeDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a stored document",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withStore(func(ctx context.Context, store ports.DocumentStore) error {
			return store.Delete(ctx, args[0])
		})
	},
}

func init() {
	storePutCmd.Flags().StringP("format", "f", "", "Input format (json, yaml)")
	storeGetCmd.Flags().StringP("format", "f", "json", "Output format (json, yaml)")

	storeCmd.AddCommand(storeListCmd, storePutCmd, storeGetCmd, storeDeleteCmd)
	rootCmd.AddCommand(storeCmd)
}
