package commands

import (
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"sort"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"gestorpro/internal/cache"
	"gestorpro/internal/models"
	"gestorpro/internal/poll"
	"gestorpro/internal/util"
)

var botsCmd = &cobra.Command{
	Use:   "bots",
	Short: "Manage the chatbot fleet",
}

var botsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all bots with live status",
	RunE: func(cmd *cobra.Command, args []string) error {
		gateway, err := newGateway()
		if err != nil {
			return err
		}

		bots, err := gateway.GetBots(cmd.Context())
		if err != nil {
			return fmt.Errorf("error fetching bots: %s", describe(err))
		}

		if len(bots) == 0 {
			fmt.Println("No bots yet. Use 'gestorpro bots add' to create one.")
			return nil
		}

		sort.SliceStable(bots, func(i, j int) bool {
			return bots[i].Created().After(bots[j].Created())
		})

		for _, bot := range bots {
			printBotLine(bot)
		}
		return nil
	},
}

var botsAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Register a new bot",
	RunE: func(cmd *cobra.Command, args []string) error {
		gateway, err := newGateway()
		if err != nil {
			return err
		}

		bot := models.Bot{}
		bot.Name, _ = cmd.Flags().GetString("name")
		bot.Description, _ = cmd.Flags().GetString("description")
		bot.SystemInstruction, _ = cmd.Flags().GetString("instruction")
		bot.BuilderBotID, _ = cmd.Flags().GetString("builder-id")
		bot.BuilderBotAPIKey, _ = cmd.Flags().GetString("api-key")

		created, err := gateway.AddBot(cmd.Context(), bot)
		if err != nil {
			return fmt.Errorf("error adding bot: %s", describe(err))
		}

		fmt.Printf("Created bot %s (%s)\n", created.Name, created.ID)
		return nil
	},
}

var botsUpdateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Update an existing bot",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		gateway, err := newGateway()
		if err != nil {
			return err
		}

		ctx := cmd.Context()
		bot, err := findBot(cmd, args[0])
		if err != nil {
			return err
		}

		if v, _ := cmd.Flags().GetString("name"); v != "" {
			bot.Name = v
		}
		if v, _ := cmd.Flags().GetString("description"); v != "" {
			bot.Description = v
		}
		if v, _ := cmd.Flags().GetString("instruction"); v != "" {
			bot.SystemInstruction = v
		}
		if v, _ := cmd.Flags().GetString("builder-id"); v != "" {
			bot.BuilderBotID = v
		}
		if v, _ := cmd.Flags().GetString("api-key"); v != "" {
			bot.BuilderBotAPIKey = v
		}

		updated, err := gateway.UpdateBot(ctx, bot)
		if err != nil {
			return fmt.Errorf("error updating bot: %s", describe(err))
		}

		fmt.Printf("Updated bot %s\n", updated.Name)
		return nil
	},
}

var botsDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a bot",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		gateway, err := newGateway()
		if err != nil {
			return err
		}

		if err := gateway.DeleteBot(cmd.Context(), args[0]); err != nil {
			return fmt.Errorf("error deleting bot: %s", describe(err))
		}

		fmt.Println("Bot deleted")
		return nil
	},
}

var botsConnectCmd = &cobra.Command{
	Use:   "connect <id>",
	Short: "Bring a bot online",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		gateway, err := newGateway()
		if err != nil {
			return err
		}

		bot, err := findBot(cmd, args[0])
		if err != nil {
			return err
		}
		if bot.BuilderBotID == "" {
			return models.ErrNoBuilderBotID
		}
		if bot.State().IsTransitional() {
			return fmt.Errorf("bot is %s; wait for the transition to finish", bot.State().Label())
		}

		if err := gateway.ConnectBot(cmd.Context(), bot.ID); err != nil {
			return fmt.Errorf("error connecting bot: %s", describe(err))
		}

		fmt.Printf("Connect requested for %s. Watch its status with 'gestorpro bots watch'.\n", bot.Name)
		return nil
	},
}

var botsDisconnectCmd = &cobra.Command{
	Use:   "disconnect <id>",
	Short: "Shut a bot down",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		gateway, err := newGateway()
		if err != nil {
			return err
		}

		bot, err := findBot(cmd, args[0])
		if err != nil {
			return err
		}
		if bot.BuilderBotID == "" {
			return models.ErrNoBuilderBotID
		}
		if bot.State().IsTransitional() {
			return fmt.Errorf("bot is %s; wait for the transition to finish", bot.State().Label())
		}

		if err := gateway.DisconnectBot(cmd.Context(), bot.ID); err != nil {
			return fmt.Errorf("error disconnecting bot: %s", describe(err))
		}

		fmt.Printf("Disconnect requested for %s\n", bot.Name)
		return nil
	},
}

var botsQRCmd = &cobra.Command{
	Use:   "qr <id>",
	Short: "Print the pairing code of a bot that is ready to scan",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		gateway, err := newGateway()
		if err != nil {
			return err
		}

		bot, err := findBot(cmd, args[0])
		if err != nil {
			return err
		}
		if !bot.State().IsReadyToScan() {
			return fmt.Errorf("bot is %s; a pairing code is only available while it is ready to scan", bot.State().Label())
		}

		code, err := gateway.GetBotQRCode(cmd.Context(), bot.BuilderBotID)
		if err != nil {
			return fmt.Errorf("error fetching pairing code: %s", describe(err))
		}

		fmt.Println("Scan this payload to pair the device:")
		fmt.Println(code.QR)
		return nil
	},
}

var botsFlowsCmd = &cobra.Command{
	Use:   "flows <id>",
	Short: "Dump the conversation flows configured for a bot",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		gateway, err := newGateway()
		if err != nil {
			return err
		}

		bot, err := findBot(cmd, args[0])
		if err != nil {
			return err
		}

		flows, err := gateway.GetBotFlows(cmd.Context(), bot.BuilderBotID)
		if err != nil {
			return fmt.Errorf("error fetching flows: %s", describe(err))
		}
		if len(flows) == 0 {
			fmt.Println("This bot has no flows configured.")
			return nil
		}

		format, _ := cmd.Flags().GetString("format")
		return writeFormatted(flows, format)
	},
}

var botsPromptsCmd = &cobra.Command{
	Use:   "prompts <id>",
	Short: "Extract the assistant system prompts from a bot's flows",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		gateway, err := newGateway()
		if err != nil {
			return err
		}

		bot, err := findBot(cmd, args[0])
		if err != nil {
			return err
		}

		flows, err := gateway.GetBotFlows(cmd.Context(), bot.BuilderBotID)
		if err != nil {
			return fmt.Errorf("error fetching flows: %s", describe(err))
		}

		prompts := models.ExtractAssistantPrompts(flows)
		if len(prompts) == 0 {
			fmt.Println("No assistant system prompts found in this bot's flows.")
			return nil
		}

		format, _ := cmd.Flags().GetString("format")
		return writeFormatted(prompts, format)
	},
}

var botsWatchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Poll the fleet and print status changes until interrupted",
	RunE: func(cmd *cobra.Command, args []string) error {
		gateway, err := newGateway()
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
		defer stop()

		list := cache.NewList(func(b models.Bot) string { return b.ID })
		list.SetSort(func(a, b models.Bot) bool { return a.Created().After(b.Created()) })

		previous := map[string]string{}
		reconciler := poll.New(globalConfig.BotPollInterval(), gateway.GetBots, func(bots []models.Bot) {
			list.Replace(bots)
			for _, bot := range list.Items() {
				if previous[bot.ID] != bot.Status {
					previous[bot.ID] = bot.Status
					printBotLine(bot)
				}
			}
		})

		fmt.Printf("Watching bots every %s (ctrl+c to stop)\n", globalConfig.BotPollInterval())
		reconciler.Start(ctx)
		<-ctx.Done()
		reconciler.Stop()
		return nil
	},
}

// findBot fetches the fleet and resolves one bot by record id
func findBot(cmd *cobra.Command, botID string) (models.Bot, error) {
	gateway, err := newGateway()
	if err != nil {
		return models.Bot{}, err
	}

	bots, err := gateway.GetBots(cmd.Context())
	if err != nil {
		return models.Bot{}, fmt.Errorf("error fetching bots: %s", describe(err))
	}

	for _, bot := range bots {
		if bot.ID == botID {
			return bot, nil
		}
	}
	return models.Bot{}, fmt.Errorf("no bot with id %s", botID)
}

// printBotLine renders one status line with the state color
func printBotLine(bot models.Bot) {
	state := bot.State()

	var paint *color.Color
	switch {
	case state.IsOnline():
		paint = color.New(color.FgGreen)
	case state.IsTransitional(), state.Kind == models.BotStateInProgress:
		paint = color.New(color.FgBlue)
	case state.IsReadyToScan():
		paint = color.New(color.FgMagenta)
	case state.Kind == models.BotStateUnknown:
		paint = color.New(color.FgWhite)
	default:
		paint = color.New(color.FgRed)
	}

	fmt.Printf("%-24s ", util.Truncate(bot.Name, 24))
	paint.Printf("%-18s", state.Label())
	if d, ok := bot.OnlineFor(time.Now()); ok {
		fmt.Printf(" up %s", util.FormatDuration(d))
	} else if bot.LastOnlineDuration != "" {
		fmt.Printf(" last %s", bot.LastOnlineDuration)
	}
	fmt.Printf("  (%s)\n", bot.ID)
}

// writeFormatted marshals v to stdout as json or yaml
func writeFormatted(v interface{}, format string) error {
	switch format {
	case "yaml":
		out, err := yaml.Marshal(v)
		if err != nil {
			return err
		}
		fmt.Print(string(out))
	case "", "json":
		out, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(out))
	default:
		return fmt.Errorf("unknown format %q (valid: json, yaml)", format)
	}
	return nil
}

func init() {
	botsAddCmd.Flags().String("name", "", "Bot name")
	botsAddCmd.Flags().String("description", "", "Description")
	botsAddCmd.Flags().String("instruction", "", "System instruction")
	botsAddCmd.Flags().String("builder-id", "", "Builder-bot platform id")
	botsAddCmd.Flags().String("api-key", "", "Builder-bot API key")

	botsUpdateCmd.Flags().String("name", "", "Bot name")
	botsUpdateCmd.Flags().String("description", "", "Description")
	botsUpdateCmd.Flags().String("instruction", "", "System instruction")
	botsUpdateCmd.Flags().String("builder-id", "", "Builder-bot platform id")
	botsUpdateCmd.Flags().String("api-key", "", "Builder-bot API key")

	botsFlowsCmd.Flags().String("format", "json", "Output format (json or yaml)")
	botsPromptsCmd.Flags().String("format", "json", "Output format (json or yaml)")

	botsCmd.AddCommand(botsListCmd)
	botsCmd.AddCommand(botsAddCmd)
	botsCmd.AddCommand(botsUpdateCmd)
	botsCmd.AddCommand(botsDeleteCmd)
	botsCmd.AddCommand(botsConnectCmd)
	botsCmd.AddCommand(botsDisconnectCmd)
	botsCmd.AddCommand(botsQRCmd)
	botsCmd.AddCommand(botsFlowsCmd)
	botsCmd.AddCommand(botsPromptsCmd)
	botsCmd.AddCommand(botsWatchCmd)
}
