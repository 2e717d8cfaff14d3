// Command ibmfdump inspects an IBMF face blob: face headers, glyph
// directory entries, and the ligature/kerning program. It is the Go-idiom
// equivalent of IBMFFace::showFace/showGlyphInfo/showLigKerns, replacing
// the teacher's cmd/dumpfont for the new wire format.
package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/sindarin-inc/tiny-font/ibmf"
)

func loadFontData(path string) (*ibmf.FontData, error) {
	blob, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ibmf.NewFontData(blob, nil)
}

func main() {
	root := &cobra.Command{
		Use:   "ibmfdump FILE",
		Short: "Inspect an IBMF font blob",
	}

	root.AddCommand(
		&cobra.Command{
			Use:   "faces FILE",
			Short: "List every face and its header",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				fd, err := loadFontData(args[0])
				if err != nil {
					return err
				}
				for i := 0; i < fd.GetFaceCount(); i++ {
					fmt.Fprintf(cmd.OutOrStdout(), "face %d:\n", i)
					fd.GetFace(i).Dump(cmd.OutOrStdout())
				}
				return nil
			},
		},
		&cobra.Command{
			Use:   "glyphs FILE FACE",
			Short: "List every glyph of the given face index",
			Args:  cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				fd, err := loadFontData(args[0])
				if err != nil {
					return err
				}
				faceIdx, err := strconv.Atoi(args[1])
				if err != nil {
					return err
				}
				face := fd.GetFace(faceIdx)
				for i := 0; i < face.GlyphCount(); i++ {
					face.DumpGlyphInfo(cmd.OutOrStdout(), uint16(i))
				}
				return nil
			},
		},
		&cobra.Command{
			Use:   "ligkern FILE FACE",
			Short: "Dump the ligature/kerning program of the given face index",
			Args:  cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				fd, err := loadFontData(args[0])
				if err != nil {
					return err
				}
				faceIdx, err := strconv.Atoi(args[1])
				if err != nil {
					return err
				}
				fd.GetFace(faceIdx).DumpLigKern(cmd.OutOrStdout())
				return nil
			},
		},
	)

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
