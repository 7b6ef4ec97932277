package main

import (
	"github.com/Zuo-Peng/chatlog/internal/index"
	"github.com/Zuo-Peng/chatlog/internal/open"
	"github.com/spf13/cobra"
)

func openCmd(g *globals) *cobra.Command {
	var hitSeq int

	cmd := &cobra.Command{
		Use:   "open <transcriptKey>",
		Short: "Open the transcript file in $EDITOR at the message's header line",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := index.OpenDB(g.cfg.DBPath)
			if err != nil {
				return err
			}
			defer db.Close()

			return open.OpenTranscript(db, args[0], hitSeq)
		},
	}

	cmd.Flags().IntVar(&hitSeq, "hit", -1, "Message sequence number to jump to")

	return cmd
}
