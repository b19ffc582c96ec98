package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/spf13/cobra"

	"github.com/vgcstats/go-showdown-metrics/internal/winrate"
)

const analyzeSystemPrompt = `You are a competitive VGC (doubles Pokemon) analyst. You are given structured
win-rate data from a replay-parsing tool and a question from the player.

Rules:
- Answer ONLY from the data provided. Never invent or estimate statistics.
- Always cite specific numbers when making a claim.
- If the data is insufficient to answer confidently, say so explicitly.
- Be concise and actionable — focus on what the player can actually improve.
- Avoid generic VGC advice unless it directly explains a pattern in the data.

Metrics glossary:
- Best-of-3 winrate: match-level record; tied 1-1 sets are undecided and excluded.
- Individual game winrate: every game counts once, regardless of set outcome.
- By brought Pokemon: games where that species was among the four brought (leads + back).
- By lead pair: the two Pokemon sent out first, order-insensitive.
- By terastallized Pokemon: which Pokemon used tera that game; "No Terastallization" means tera was never used.
- Conditional Bo3 winrate: only sets where the opponent showed all the required species.`

var (
	analyzeModel     string
	analyzeAPIKey    string
	analyzeOpponents []string
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze <player> <question>",
	Short: "AI-powered grounded analysis (requires ANTHROPIC_API_KEY)",
	Args:  cobra.ExactArgs(2),
	RunE:  runAnalyze,
}

func init() {
	analyzeCmd.Flags().StringVar(&analyzeModel, "model", "claude-haiku-4-5-20251001", "Anthropic model to use")
	analyzeCmd.Flags().StringVar(&analyzeAPIKey, "api-key", "", "Anthropic API key (falls back to $ANTHROPIC_API_KEY)")
	analyzeCmd.Flags().StringArrayVar(&analyzeOpponents, "opponent", nil, "required opponent species for the conditional Bo3 slice")
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	player, question := args[0], args[1]

	games, err := loadGamesFromStore(player)
	if err != nil {
		return err
	}
	if len(games) == 0 {
		return fmt.Errorf("no stored games found for player %q", player)
	}

	rep := winrate.BuildReport(games, analyzeOpponents)
	contextJSON, err := json.Marshal(winratesAnalysis{
		Player:    player,
		GamesUsed: len(games),
		Metrics:   rep,
	})
	if err != nil {
		return fmt.Errorf("build context: %w", err)
	}

	return callAnthropic(cmd.Context(), analyzeAPIKey, analyzeModel, string(contextJSON), question)
}

// callAnthropic streams a response from the Anthropic API and prints it to stdout.
func callAnthropic(ctx context.Context, apiKey, modelID, dataJSON, question string) error {
	if apiKey == "" {
		apiKey = os.Getenv("ANTHROPIC_API_KEY")
	}
	if apiKey == "" {
		return fmt.Errorf("no API key: set ANTHROPIC_API_KEY or use --api-key")
	}

	client := anthropic.NewClient(option.WithAPIKey(apiKey))

	userMsg := fmt.Sprintf("DATA:\n%s\n\nQUESTION: %s", dataJSON, question)

	fmt.Fprintln(os.Stdout, "\n─── AI Analysis ─────────────────────────────────────")

	stream := client.Messages.NewStreaming(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(modelID),
		MaxTokens: 1024,
		System: []anthropic.TextBlockParam{
			{Text: analyzeSystemPrompt},
		},
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(userMsg)),
		},
	})

	for stream.Next() {
		evt := stream.Current()
		if evt.Type == "content_block_delta" {
			delta := evt.AsContentBlockDelta()
			if delta.Delta.Type == "text_delta" {
				fmt.Fprint(os.Stdout, delta.Delta.AsTextDelta().Text)
			}
		}
	}
	fmt.Fprintln(os.Stdout, "\n─────────────────────────────────────────────────────")

	if err := stream.Err(); err != nil {
		errStr := err.Error()
		if strings.Contains(errStr, "401") || strings.Contains(errStr, "authentication") {
			return fmt.Errorf("API authentication failed — check your API key")
		}
		return fmt.Errorf("streaming error: %w", err)
	}
	return nil
}
