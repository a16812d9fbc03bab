// structtool creates, inspects and edits structure files from the
// command line.
package main

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"structcraft.dev/internal/structure"
	"structcraft.dev/internal/tooling"
)

var (
	logger = log.New(os.Stdout, "[structtool] ", log.LstdFlags)

	cfgPath string
	cfg     tooling.Config
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		logger.Printf("error: %v", err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "structtool",
		Short:         "create, inspect and edit structure files",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var err error
			cfg, err = tooling.Load(cfgPath)
			return err
		},
	}
	root.PersistentFlags().StringVar(&cfgPath, "config", "", "path to structtool.yaml (empty: built-in defaults)")

	root.AddCommand(
		newCmd(),
		infoCmd(),
		fillCmd(),
		lineCmd(),
		cloneCmd(),
		reflectCmd(),
		applyCmd(),
		indexCmd(),
	)
	return root
}

func newCmd() *cobra.Command {
	var size string
	var dataVersion int
	cmd := &cobra.Command{
		Use:   "new <file>",
		Short: "create an empty structure file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sz, err := parseVec(size)
			if err != nil {
				return fmt.Errorf("--size: %w", err)
			}
			s, err := structure.New(sz)
			if err != nil {
				return err
			}
			dv := dataVersion
			if dv == 0 {
				dv = cfg.DefaultDataVersion
			}
			s.DataVersion = int32(dv)
			return saveDoc(s, args[0])
		},
	}
	cmd.Flags().StringVar(&size, "size", "", "document extents as x,y,z")
	cmd.Flags().IntVar(&dataVersion, "data-version", 0, "DataVersion stamp (0: config default)")
	_ = cmd.MarkFlagRequired("size")
	return cmd
}

func infoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "info <file>",
		Short: "print document header and counts",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := structure.Load(args[0])
			if err != nil {
				return err
			}
			fmt.Printf("size:         %d x %d x %d\n", s.Size.X, s.Size.Y, s.Size.Z)
			fmt.Printf("blocks:       %d\n", s.BlockCount())
			fmt.Printf("palette:      %d\n", s.Palette.Len())
			fmt.Printf("entities:     %d\n", len(s.Entities()))
			fmt.Printf("data version: %d\n", s.DataVersion)
			if mn, ok := s.MinCoords(false); ok {
				mx, _ := s.MaxCoords(false)
				fmt.Printf("occupied:     %v .. %v (air excluded)\n", mn, mx)
			}
			return nil
		},
	}
}

// parseVec reads "x,y,z".
func parseVec(s string) (structure.Vec3, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 3 {
		return structure.Vec3{}, fmt.Errorf("%q: want x,y,z", s)
	}
	var out [3]int
	for i, p := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return structure.Vec3{}, fmt.Errorf("%q: %w", s, err)
		}
		out[i] = n
	}
	return structure.Vec3{X: out[0], Y: out[1], Z: out[2]}, nil
}

// parseBlock reads "name" or "name;k=v,k=v", resolving config aliases.
func parseBlock(s string) (structure.BlockData, error) {
	name, propPart, _ := strings.Cut(s, ";")
	name = cfg.ResolveBlockName(strings.TrimSpace(name))
	if name == "" {
		return structure.BlockData{}, fmt.Errorf("empty block name in %q", s)
	}
	var props []structure.Property
	if propPart != "" {
		for _, kv := range strings.Split(propPart, ",") {
			k, v, ok := strings.Cut(kv, "=")
			if !ok {
				return structure.BlockData{}, fmt.Errorf("%q: property %q not k=v", s, kv)
			}
			props = append(props, structure.Property{
				Name:  strings.TrimSpace(k),
				Value: strings.TrimSpace(v),
			})
		}
	}
	return structure.NewBlock(name, props...), nil
}

func saveDoc(s *structure.Structure, path string) error {
	if cfg.PressurizeOnSave {
		if err := s.Pressurize(); err != nil {
			return err
		}
	}
	if err := s.Save(path); err != nil {
		return err
	}
	logger.Printf("wrote %s (%d blocks, palette %d)", path, s.BlockCount(), s.Palette.Len())
	return nil
}
