package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sowonlabs/bunryu/internal/llm"
)

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version and available models",
		Run: func(_ *cobra.Command, _ []string) {
			fmt.Printf("bunryu %s\n\n", version)
			fmt.Println("available models:")
			for _, m := range llm.Models() {
				marker := " "
				if m.ID == llm.DefaultModelID {
					marker = "*"
				}
				fmt.Printf("%s %-16s %s (%s)\n", marker, m.ID, m.Name, m.Description)
			}
		},
	}
}
