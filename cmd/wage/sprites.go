package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var spritesCmd = &cobra.Command{
	Use:   "sprites",
	Short: "List sprite sheets and animations",
	Long:  `Loads sprites.yaml, builds every animation and prints a summary.`,
	Args:  cobra.NoArgs,
	RunE:  runSprites,
}

func runSprites(cmd *cobra.Command, _ []string) error {
	_, cfg, err := loadConfig()
	if err != nil {
		return err
	}
	set, err := cfg.Sprites.Build()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	sheets := set.Sheets()
	if len(sheets) == 0 {
		fmt.Fprintln(out, "No sprite sheets defined.")
		return nil
	}

	for _, sheet := range sheets {
		fmt.Fprintf(out, "%s\n", sheet)
		for _, name := range set.Animations(sheet) {
			def, _ := set.Def(sheet, name)
			repeat := "loop"
			if def.Repeat >= 0 {
				repeat = fmt.Sprintf("x%d", def.Repeat)
			}
			fmt.Fprintf(out, "  %-8s %-9s %-5s %2d frames  %s\n", name, def.Mode, repeat, def.Len(), def.Texture)
		}
	}
	if len(cfg.Sprites.Sounds) > 0 {
		fmt.Fprintf(out, "\n%d sounds\n", len(cfg.Sprites.Sounds))
	}
	return nil
}
