package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/forestledger/backend/src/token"
	"github.com/forestledger/backend/src/utils/logger"
	"github.com/forestledger/backend/src/utils/xrpl"

	"github.com/spf13/cobra"
)

func init() {
	RootCmd.AddCommand(setupTokenCmd)
}

var setupTokenCmd = &cobra.Command{
	Use:   "setup-token",
	Short: "Provision the token wallets, trust line and initial supply, then exit",
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		// Let the root command finish once provisioning is done
		defer cancel()

		log := logger.NewSublogger("setup-token-cmd")

		service := token.NewService(conf).
			WithLedger(xrpl.NewClient(&conf.Xrpl))

		result, err := service.Provision(ctx)
		if err != nil {
			log.WithError(err).Error("Failed to setup token")
			return
		}

		// Seeds of freshly generated wallets are only printed here
		buf, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return
		}
		fmt.Println(string(buf))

		log.WithField("currency", result.Currency).Info("Token setup finished")
		return
	},
}
