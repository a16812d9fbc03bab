package main

import (
	"fmt"
	"strings"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"structcraft.dev/internal/plan"
	"structcraft.dev/internal/structure"
)

func fillCmd() *cobra.Command {
	var minStr, maxStr, blockStr, filterStr, mode string
	cmd := &cobra.Command{
		Use:   "fill <file>",
		Short: "fill a cuboid region",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := structure.Load(args[0])
			if err != nil {
				return err
			}
			min, err := parseVec(minStr)
			if err != nil {
				return fmt.Errorf("--min: %w", err)
			}
			max, err := parseVec(maxStr)
			if err != nil {
				return fmt.Errorf("--max: %w", err)
			}
			b, err := parseBlock(blockStr)
			if err != nil {
				return err
			}
			c := structure.NewCuboid(min, max)

			switch mode {
			case "solid":
				err = s.FillSolid(c, b)
			case "hollow":
				err = s.FillHollow(c, b)
			case "hollow-air":
				err = s.FillHollowAir(c, b)
			case "frame":
				err = s.FillFrame(c, b)
			case "keep":
				err = s.FillKeep(c, b)
			case "replace":
				if filterStr == "" {
					return fmt.Errorf("--filter required with --mode replace")
				}
				var filter structure.BlockData
				if filter, err = parseBlock(filterStr); err != nil {
					return err
				}
				err = s.FillReplace(c, b, filter)
			default:
				return fmt.Errorf("unknown --mode %q", mode)
			}
			if err != nil {
				return err
			}
			return saveDoc(s, args[0])
		},
	}
	cmd.Flags().StringVar(&minStr, "min", "", "region corner as x,y,z")
	cmd.Flags().StringVar(&maxStr, "max", "", "region corner as x,y,z")
	cmd.Flags().StringVar(&blockStr, "block", "", "block as name or name;k=v,k=v")
	cmd.Flags().StringVar(&filterStr, "filter", "", "only replace this block (mode replace)")
	cmd.Flags().StringVar(&mode, "mode", "solid", "solid|hollow|hollow-air|frame|keep|replace")
	_ = cmd.MarkFlagRequired("min")
	_ = cmd.MarkFlagRequired("max")
	_ = cmd.MarkFlagRequired("block")
	return cmd
}

func lineCmd() *cobra.Command {
	var fromStr, toStr, blockStr string
	cmd := &cobra.Command{
		Use:   "line <file>",
		Short: "draw a straight block line",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := structure.Load(args[0])
			if err != nil {
				return err
			}
			from, err := parseVec(fromStr)
			if err != nil {
				return fmt.Errorf("--from: %w", err)
			}
			to, err := parseVec(toStr)
			if err != nil {
				return fmt.Errorf("--to: %w", err)
			}
			b, err := parseBlock(blockStr)
			if err != nil {
				return err
			}
			if err := s.DrawLine(from, to, b); err != nil {
				return err
			}
			return saveDoc(s, args[0])
		},
	}
	cmd.Flags().StringVar(&fromStr, "from", "", "start position as x,y,z")
	cmd.Flags().StringVar(&toStr, "to", "", "end position as x,y,z")
	cmd.Flags().StringVar(&blockStr, "block", "", "block as name or name;k=v,k=v")
	_ = cmd.MarkFlagRequired("from")
	_ = cmd.MarkFlagRequired("to")
	_ = cmd.MarkFlagRequired("block")
	return cmd
}

func cloneCmd() *cobra.Command {
	var minStr, maxStr, destStr, mirrorStr string
	var rotation int
	cmd := &cobra.Command{
		Use:   "clone <file>",
		Short: "clone a region within the document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := structure.Load(args[0])
			if err != nil {
				return err
			}
			min, err := parseVec(minStr)
			if err != nil {
				return fmt.Errorf("--min: %w", err)
			}
			max, err := parseVec(maxStr)
			if err != nil {
				return fmt.Errorf("--max: %w", err)
			}
			dest, err := parseVec(destStr)
			if err != nil {
				return fmt.Errorf("--dest: %w", err)
			}
			tr := structure.Transform{Rotation: rotation}
			if tr.MirrorX, tr.MirrorY, tr.MirrorZ, err = parseAxes(mirrorStr); err != nil {
				return fmt.Errorf("--mirror: %w", err)
			}
			if err := s.Clone(structure.NewCuboid(min, max), dest, tr); err != nil {
				return err
			}
			return saveDoc(s, args[0])
		},
	}
	cmd.Flags().StringVar(&minStr, "min", "", "source corner as x,y,z")
	cmd.Flags().StringVar(&maxStr, "max", "", "source corner as x,y,z")
	cmd.Flags().StringVar(&destStr, "dest", "", "destination anchor as x,y,z")
	cmd.Flags().IntVar(&rotation, "rotate", 0, "rotation about y in degrees (0/90/180/270)")
	cmd.Flags().StringVar(&mirrorStr, "mirror", "", "mirror axes, e.g. x or x,z")
	_ = cmd.MarkFlagRequired("min")
	_ = cmd.MarkFlagRequired("max")
	_ = cmd.MarkFlagRequired("dest")
	return cmd
}

func reflectCmd() *cobra.Command {
	var axesStr string
	cmd := &cobra.Command{
		Use:   "reflect <file>",
		Short: "mirror the whole document across axis midpoints",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := structure.Load(args[0])
			if err != nil {
				return err
			}
			x, y, z, err := parseAxes(axesStr)
			if err != nil {
				return fmt.Errorf("--axes: %w", err)
			}
			if err := s.Reflect(structure.MirrorMask(x, y, z)); err != nil {
				return err
			}
			return saveDoc(s, args[0])
		},
	}
	cmd.Flags().StringVar(&axesStr, "axes", "", "axes to mirror, e.g. x or x,z")
	_ = cmd.MarkFlagRequired("axes")
	return cmd
}

func applyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "apply <file> <plan.json>",
		Short: "run an edit plan against the document",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := structure.Load(args[0])
			if err != nil {
				return err
			}
			p, err := plan.Load(args[1])
			if err != nil {
				return err
			}
			bar := progressbar.Default(int64(len(p.Ops)), "applying")
			err = p.Apply(s, func(i int, op string) {
				_ = bar.Add(1)
			})
			_ = bar.Finish()
			if err != nil {
				return err
			}
			return saveDoc(s, args[0])
		},
	}
	return cmd
}

// parseAxes reads "x", "x,z" etc.
func parseAxes(s string) (x, y, z bool, err error) {
	if strings.TrimSpace(s) == "" {
		return false, false, false, nil
	}
	for _, a := range strings.Split(s, ",") {
		switch strings.TrimSpace(a) {
		case "x":
			x = true
		case "y":
			y = true
		case "z":
			z = true
		default:
			return false, false, false, fmt.Errorf("unknown axis %q", a)
		}
	}
	return x, y, z, nil
}
