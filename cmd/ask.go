package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/askframe/internal/llm"
	"github.com/abhisek/askframe/internal/prompt"
	"github.com/abhisek/askframe/internal/render"
	"github.com/abhisek/askframe/internal/result"
)

func newAskCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "ask [text...]",
		Short: "Render a prompt and print the generated text",
		Long: "ask renders a prompt from literal text, --template or --template-file, " +
			"appends --suffix and prints the backend's reply unchanged. With --result " +
			"the reply is parsed as a {\"type\", \"value\"} envelope and rendered.",
		RunE: runAsk,
	}

	c.Flags().StringP("template", "t", "", "Prompt template (text/template syntax)")
	c.Flags().StringP("template-file", "f", "", "Read the prompt template from a file")
	c.Flags().StringArray("var", nil, "Template variable as key=value (repeatable)")
	c.Flags().StringP("suffix", "s", "", "Text appended to the rendered prompt")
	c.Flags().StringP("purpose", "p", "ask", "Purpose label recorded with the generation event")
	c.Flags().Bool("result", false, "Parse the reply as a tagged result envelope")
	c.MarkFlagsMutuallyExclusive("template", "template-file")
	return c
}

func runAsk(cmd *cobra.Command, args []string) error {
	p, err := buildPrompt(cmd, args)
	if err != nil {
		return err
	}

	cfg, err := loadConfig(cmd)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger, err := newLogger(cmd)
	if err != nil {
		return fmt.Errorf("create logger: %w", err)
	}
	defer logger.Sync() //nolint:errcheck

	s, err := openStore(cmd)
	if err != nil {
		return err
	}
	defer s.Close()

	ctx := cmd.Context()
	inv, err := llm.NewInvokerFromConfig(ctx, cfg, logger, s.EventRepo())
	if err != nil {
		return fmt.Errorf("create invoker: %w", err)
	}

	if cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.Timeout)
		defer cancel()
	}
	purpose, _ := cmd.Flags().GetString("purpose")
	ctx = llm.WithPurpose(ctx, purpose)

	suffix, _ := cmd.Flags().GetString("suffix")
	text, err := inv.Call(ctx, p, suffix)
	if err != nil {
		return err
	}

	var res result.Result = result.Other{Value: text}
	if asResult, _ := cmd.Flags().GetBool("result"); asResult {
		if res, err = result.Parse([]byte(text)); err != nil {
			return fmt.Errorf("parse result: %w", err)
		}
	}

	out := cmd.OutOrStdout()
	r := render.New(render.WithStyle(isTerminal(out)))
	fmt.Fprintln(out, r.Render(res))
	return nil
}

// buildPrompt returns a Template when a template or variables are given,
// otherwise the positional arguments as literal text.
func buildPrompt(cmd *cobra.Command, args []string) (prompt.Prompt, error) {
	tmpl, _ := cmd.Flags().GetString("template")
	if file, _ := cmd.Flags().GetString("template-file"); file != "" {
		data, err := os.ReadFile(file)
		if err != nil {
			return nil, fmt.Errorf("read template: %w", err)
		}
		tmpl = string(data)
	}

	rawVars, _ := cmd.Flags().GetStringArray("var")
	vars, err := parseVars(rawVars)
	if err != nil {
		return nil, err
	}

	if tmpl == "" {
		if len(args) == 0 {
			return nil, fmt.Errorf("no prompt: pass text, --template or --template-file")
		}
		tmpl = strings.Join(args, " ")
		if len(vars) == 0 {
			return prompt.Text(tmpl), nil
		}
	}

	return prompt.NewTemplate("ask", tmpl, vars)
}

// parseVars turns key=value pairs into template variables. The value may
// itself contain '='.
func parseVars(pairs []string) (map[string]any, error) {
	vars := make(map[string]any, len(pairs))
	for _, kv := range pairs {
		k, v, ok := strings.Cut(kv, "=")
		if !ok || k == "" {
			return nil, fmt.Errorf("invalid --var %q: want key=value", kv)
		}
		vars[k] = v
	}
	return vars, nil
}
