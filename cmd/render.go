package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/zhubert/mise/internal/markdown"
	"github.com/zhubert/mise/internal/ui"
)

var (
	renderHTML  bool
	renderWidth int
)

var renderCmd = &cobra.Command{
	Use:   "render [file]",
	Short: "Render critique markdown to the terminal or HTML",
	Long: `Renders restricted markdown (headings, lists, bold, italic, code) the
way the chat panel does. Reads from the given file, or stdin when no
file is given. With --html the output is escaped HTML instead of
styled terminal text.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runRender,
}

func init() {
	renderCmd.Flags().BoolVar(&renderHTML, "html", false, "Emit escaped HTML instead of terminal output")
	renderCmd.Flags().IntVar(&renderWidth, "width", ui.DefaultWrapWidth, "Wrap width for terminal output")
	rootCmd.AddCommand(renderCmd)
}

func runRender(cmd *cobra.Command, args []string) error {
	input, err := readRenderInput(args)
	if err != nil {
		return err
	}

	if renderHTML {
		fmt.Fprintln(cmd.OutOrStdout(), markdown.RenderHTML(input))
		return nil
	}

	fmt.Fprintln(cmd.OutOrStdout(), ui.RenderMarkdown(input, renderWidth))
	return nil
}

func readRenderInput(args []string) (string, error) {
	if len(args) == 1 {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return "", fmt.Errorf("error reading %s: %w", args[0], err)
		}
		return string(data), nil
	}

	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return "", fmt.Errorf("error reading stdin: %w", err)
	}
	return string(data), nil
}
