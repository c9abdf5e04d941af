package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/randalmurphal/jdi/pkg/jdi/message"
)

type encoder interface {
	Encode(compact bool) ([]byte, error)
}

func newMessageCmd() *cobra.Command {
	var (
		kind    string
		compact bool
	)
	cmd := &cobra.Command{
		Use:   "message [file|-]",
		Short: "Normalize a JDI message and print its JSON form",
		Long: "Reads a JDI message from file, or stdin when the argument is \"-\", " +
			"and prints it in full or compact form. With no argument an empty message is printed.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var init any
			if len(args) == 1 {
				r, closeInput, err := openInput(cmd, args[0])
				if err != nil {
					return err
				}
				defer closeInput()
				init = r
			}

			msg, err := buildMessage(kind, init)
			if err != nil {
				return err
			}
			data, err := msg.Encode(compact)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), string(data))
			return err
		},
	}
	cmd.Flags().StringVarP(&kind, "type", "t", "message", "message kind: message, request or response")
	cmd.Flags().BoolVarP(&compact, "compact", "c", false, "print only payload and status")
	return cmd
}

func openInput(cmd *cobra.Command, name string) (io.Reader, func(), error) {
	if name == "-" {
		return cmd.InOrStdin(), func() {}, nil
	}
	f, err := os.Open(name)
	if err != nil {
		return nil, nil, fmt.Errorf("open message: %w", err)
	}
	return f, func() { _ = f.Close() }, nil
}

func buildMessage(kind string, init any) (encoder, error) {
	switch kind {
	case "message":
		return message.New(init)
	case "request":
		return message.NewRequest(init)
	case "response":
		return message.NewResponse(init)
	}
	return nil, fmt.Errorf("unknown message type %q: want message, request or response", kind)
}
