package main

import (
	"fmt"

	"github.com/Zuo-Peng/chatlog/internal/index"
	"github.com/Zuo-Peng/chatlog/internal/render"
	"github.com/spf13/cobra"
)

func previewCmd(g *globals) *cobra.Command {
	var hitSeq int
	var context int
	var query string

	cmd := &cobra.Command{
		Use:   "preview <transcriptKey>",
		Short: "Preview a conversation with context around a message",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := index.OpenDB(g.cfg.DBPath)
			if err != nil {
				return err
			}
			defer db.Close()

			out, _, err := render.RenderConversation(db, args[0], render.Options{
				HitSeq:  hitSeq,
				Context: context,
				Query:   query,
			})
			if err != nil {
				return err
			}

			fmt.Print(out)
			return nil
		},
	}

	cmd.Flags().IntVar(&hitSeq, "hit", -1, "Message sequence number to highlight")
	cmd.Flags().IntVar(&context, "context", 10, "Messages before/after hit to show")
	cmd.Flags().StringVar(&query, "query", "", "Search query for keyword highlighting")

	return cmd
}
