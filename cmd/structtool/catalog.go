package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"structcraft.dev/internal/index"
)

func indexCmd() *cobra.Command {
	var dbPath string
	cmd := &cobra.Command{
		Use:   "index",
		Short: "manage the structure catalog",
	}
	cmd.PersistentFlags().StringVar(&dbPath, "db", "", "catalog database path (empty: config index_path)")

	resolve := func() string {
		if dbPath != "" {
			return dbPath
		}
		return cfg.IndexPath
	}

	add := &cobra.Command{
		Use:   "add <file>...",
		Short: "catalog one or more structure files",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cat, err := index.Open(resolve())
			if err != nil {
				return err
			}
			defer cat.Close()
			for _, path := range args {
				e, err := index.Describe(path)
				if err != nil {
					return fmt.Errorf("%s: %w", path, err)
				}
				if err := cat.Upsert(e); err != nil {
					return fmt.Errorf("%s: %w", path, err)
				}
				logger.Printf("indexed %s (%d blocks, %s)", e.Path, e.Blocks, e.Digest[:12])
			}
			return nil
		},
	}

	ls := &cobra.Command{
		Use:   "ls",
		Short: "list catalogued structures",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cat, err := index.Open(resolve())
			if err != nil {
				return err
			}
			defer cat.Close()
			entries, err := cat.List()
			if err != nil {
				return err
			}
			for _, e := range entries {
				fmt.Printf("%-40s %4dx%-4dx%-4d blocks=%-7d palette=%-4d dv=%d\n",
					e.Path, e.SizeX, e.SizeY, e.SizeZ, e.Blocks, e.Palette, e.DataVersion)
			}
			if len(entries) == 0 {
				logger.Printf("catalog is empty")
			}
			return nil
		},
	}

	rm := &cobra.Command{
		Use:   "rm <path>...",
		Short: "drop catalog rows",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cat, err := index.Open(resolve())
			if err != nil {
				return err
			}
			defer cat.Close()
			for _, path := range args {
				if err := cat.Remove(path); err != nil {
					return err
				}
			}
			return nil
		},
	}

	cmd.AddCommand(add, ls, rm)
	return cmd
}
