// Command particlectl samples and previews the particle text effect used on
// the website hero without running the server.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/wackyworksdigital/wearewacky-com-sub000/pkg/particles"
)

type surfaceFlags struct {
	text         string
	fontSize     float64
	particleSize int
	stride       int
	width        int
	height       int
	seed         uint64
}

func (f *surfaceFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.text, "text", "t", "WACKY", "text to sample")
	cmd.Flags().Float64Var(&f.fontSize, "font-size", particles.DefaultFontSize, "font size in pixels")
	cmd.Flags().IntVar(&f.particleSize, "particle-size", particles.DefaultParticleSize, "particle square size in pixels")
	cmd.Flags().IntVar(&f.stride, "stride", particles.DefaultStride, "sampling grid spacing")
	cmd.Flags().IntVar(&f.width, "width", 640, "surface width")
	cmd.Flags().IntVar(&f.height, "height", 200, "surface height")
	cmd.Flags().Uint64Var(&f.seed, "seed", 0, "scatter seed (0 = random)")
}

func (f *surfaceFlags) options() particles.Options {
	return particles.Options{
		FontSize:     f.fontSize,
		ParticleSize: f.particleSize,
		Stride:       f.stride,
		Seed:         f.seed,
	}
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "particlectl",
		Short:         "Sample and preview particle text",
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	root.AddCommand(newSampleCmd(), newRenderCmd())
	return root
}

func newSampleCmd() *cobra.Command {
	var flags surfaceFlags

	cmd := &cobra.Command{
		Use:   "sample",
		Short: "Print the sampled particle field as JSON",
		RunE: func(cmd *cobra.Command, args []string) error {
			field, err := particles.Sample(flags.text, flags.width, flags.height, flags.options())
			if err != nil {
				return err
			}

			type point struct {
				TX float64 `json:"tx"`
				TY float64 `json:"ty"`
				OX float64 `json:"ox"`
				OY float64 `json:"oy"`
			}
			out := struct {
				Width     int     `json:"width"`
				Height    int     `json:"height"`
				Count     int     `json:"count"`
				Particles []point `json:"particles"`
			}{Width: field.Width, Height: field.Height, Count: field.Len()}
			for _, p := range field.Particles {
				out.Particles = append(out.Particles, point{TX: p.TX, TY: p.TY, OX: p.OX, OY: p.OY})
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(out)
		},
	}
	flags.register(cmd)
	return cmd
}

func newRenderCmd() *cobra.Command {
	var (
		flags  surfaceFlags
		frames int
		out    string
		blocks bool
	)

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render the scatter/assemble animation to a GIF",
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Create(out)
			if err != nil {
				return fmt.Errorf("create %s: %w", out, err)
			}
			defer f.Close()

			err = particles.EncodePreview(context.Background(), f, flags.text, flags.width, flags.height,
				flags.options(), particles.PreviewOptions{Frames: frames, Blocks: blocks})
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "wrote %d frames to %s\n", frames, out)
			return nil
		},
	}
	flags.register(cmd)
	cmd.Flags().IntVar(&frames, "frames", 90, "number of frames")
	cmd.Flags().StringVarP(&out, "out", "o", "particles.gif", "output file")
	cmd.Flags().BoolVar(&blocks, "blocks", false, "render the falling-block variant")
	return cmd
}
