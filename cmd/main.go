// 指示: miu200521358
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"slices"

	"github.com/spf13/cobra"

	"github.com/miu200521358/mu_handpose_transfer/pkg/adapter/mpresenter/messages"
)

// appName はコマンド名とトレースのサービス名。
const appName = "mu_handpose"

// helpLang はヘルプ表示の言語。
const helpLang = "ja"

// validFormats は出力形式の候補。
var validFormats = []string{"text", "json", "yaml"}

// rootOptions は全コマンド共通のフラグを保持する。
type rootOptions struct {
	ConfigPath string
	Format     string
	Lang       string
	out        io.Writer
	errOut     io.Writer
}

// main はハンドポーズ転送CLIを実行する。
func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := runContext(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// run はCLI処理全体を実行する。
func run(args []string, out io.Writer, errOut io.Writer) error {
	return runContext(context.Background(), args, out, errOut)
}

// runContext は ctx の下でコマンドを実行する。
func runContext(ctx context.Context, args []string, out io.Writer, errOut io.Writer) error {
	cmd := newRootCommand(out, errOut)
	cmd.SetArgs(args)
	return cmd.ExecuteContext(ctx)
}

// newRootCommand はルートコマンドを生成する。
func newRootCommand(out io.Writer, errOut io.Writer) *cobra.Command {
	opts := &rootOptions{out: out, errOut: errOut}

	cmd := &cobra.Command{
		Use:           appName,
		Short:         messages.Translate(helpLang, messages.CommandRootShort),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !slices.Contains(validFormats, opts.Format) {
				return errors.New(messages.Translate(opts.Lang, messages.MessageFormatInvalid, opts.Format))
			}
			return nil
		},
	}
	cmd.SetOut(out)
	cmd.SetErr(errOut)

	cmd.PersistentFlags().StringVarP(&opts.ConfigPath, "config", "c", "", messages.Translate(helpLang, messages.FlagConfig))
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", messages.Translate(helpLang, messages.FlagFormat)+" (text|json|yaml)")
	cmd.PersistentFlags().StringVar(&opts.Lang, "lang", helpLang, messages.Translate(helpLang, messages.FlagLang))

	cmd.AddCommand(newReplayCommand(opts))
	cmd.AddCommand(newRigCommand(opts))
	return cmd
}
