package cmd

import (
	"github.com/forestledger/backend/src/gateway"
	"github.com/forestledger/backend/src/utils/logger"

	"github.com/spf13/cobra"
)

func init() {
	RootCmd.AddCommand(serveCmd)
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the REST gateway",
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		controller, err := gateway.NewController(conf)
		if err != nil {
			return
		}

		err = controller.Start()
		if err != nil {
			return
		}

		<-ctx.Done()

		controller.StopWait()

		return
	},
	PostRunE: func(cmd *cobra.Command, args []string) (err error) {
		log := logger.NewSublogger("serve-cmd")
		log.Debug("Finished serve command")
		return
	},
}
