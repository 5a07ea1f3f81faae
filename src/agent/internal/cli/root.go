package cli

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/sahatak/telecare-agent/src/agent/config"
	"github.com/sahatak/telecare-agent/src/agent/internal/controller"
	"github.com/sahatak/telecare-agent/src/cache"
	"github.com/sahatak/telecare-agent/src/common/logger"
	"github.com/sahatak/telecare-agent/src/common/models"
)

func Execute() error {
	return newRootCmd().Execute()
}

func newRootCmd() *cobra.Command {
	var configFile string

	cmd := &cobra.Command{
		Use:           "telecare-agent",
		Short:         "Client-side sync agent for the telecare platform",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "Path to config.yaml (default ./config.yaml)")

	cmd.AddCommand(newRunCmd(&configFile))
	cmd.AddCommand(newCacheCmd(&configFile))
	return cmd
}

func newRunCmd(configFile *string) *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Run the agent until interrupted, polling sessions and conversations",
		RunE: func(cmd *cobra.Command, args []string) error {
			conf, err := config.InitConfig(*configFile)
			if err != nil {
				return err
			}
			logger.InitLogger(logger.LoggerEnvironment(conf.LogLevel))
			defer logger.Sync()
			logger.GetLogger().Infof("starting with config: %s", conf)

			agent, err := controller.NewController(conf, logSinks())
			if err != nil {
				return err
			}
			agent.Start()
			defer agent.Shutdown()

			sigChannel := make(chan os.Signal, 1)
			signal.Notify(sigChannel, syscall.SIGTERM, syscall.SIGINT)
			<-sigChannel
			logger.GetLogger().Infof("action: shutdown_signal | result: received")
			return nil
		},
	}
}

func newCacheCmd(configFile *string) *cobra.Command {
	cacheCmd := &cobra.Command{
		Use:   "cache",
		Short: "Cache maintenance",
	}

	cacheCmd.AddCommand(&cobra.Command{
		Use:   "cleanup",
		Short: "Remove expired entries from the persistent cache",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := openStore(*configFile)
			if err != nil {
				return err
			}
			defer store.Close()
			removed := store.Cleanup()
			logger.GetLogger().Infof("action: cache_cleanup | result: success | removed: %d", removed)
			return nil
		},
	})

	cacheCmd.AddCommand(&cobra.Command{
		Use:   "clear",
		Short: "Remove every cached entry",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := openStore(*configFile)
			if err != nil {
				return err
			}
			defer store.Close()
			store.ClearAll()
			logger.GetLogger().Infof("action: cache_clear | result: success")
			return nil
		},
	})

	return cacheCmd
}

func openStore(configFile string) (cache.CacheService, error) {
	conf, err := config.InitConfig(configFile)
	if err != nil {
		return nil, err
	}
	logger.InitLogger(logger.LoggerEnvironment(conf.LogLevel))

	policies := cache.NewPolicyTable()
	if conf.PolicyFile != "" {
		if err := policies.LoadOverrides(conf.PolicyFile); err != nil {
			return nil, err
		}
	}
	return cache.NewCacheService(policies, cache.NewMemoryBackend(), cache.NewDiskBackend(conf.CacheDir)), nil
}

// logSinks routes reconciliation output to the log; a real front-end would render
// these instead.
func logSinks() controller.UISinks {
	return controller.UISinks{
		SessionButton: func(appointmentID string, button models.SessionButton) {
			logger.GetLogger().Infof("action: session_button | appointment: %s | button: %s | label: %q | enabled: %t",
				appointmentID, button.Action, button.Label, button.Enabled)
		},
		Thread: func(conversationID string, messages []models.Message) {
			logger.GetLogger().Infof("action: thread_update | conversation: %s | messages: %d", conversationID, len(messages))
		},
		Inbox: func(conversations []models.ConversationSummary) {
			unread := 0
			for _, conversation := range conversations {
				unread += conversation.UnreadCount
			}
			logger.GetLogger().Infof("action: inbox_update | conversations: %d | unread: %d", len(conversations), unread)
		},
	}
}
