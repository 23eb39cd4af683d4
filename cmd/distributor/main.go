package main

import (
	"fmt"
	"os"
	"time"

	"github.com/nspcc-dev/distributor-contract/common"
	"github.com/urfave/cli"
	"go.uber.org/zap"
)

const (
	rpcFlag      = "rpc"
	walletFlag   = "wallet"
	addressFlag  = "address"
	passwordFlag = "password"
	contractFlag = "contract"
	timeoutFlag  = "timeout"
	debugFlag    = "debug"
)

func main() {
	err := newApp().Run(os.Args)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newApp() *cli.App {
	app := cli.NewApp()
	app.Name = "distributor"
	app.Usage = "Operate Distributor contract"
	app.Version = fmt.Sprintf("%d.%d.%d", common.Version/1_000_000, common.Version/1_000%1_000, common.Version%1_000)
	app.Flags = []cli.Flag{
		cli.StringFlag{
			Name:   rpcFlag,
			Usage:  "Network address of the Neo RPC server",
			EnvVar: "DISTRIBUTOR_RPC",
		},
		cli.StringFlag{
			Name:   walletFlag,
			Usage:  "Path to the NEP-6 wallet with the transaction sender account",
			EnvVar: "DISTRIBUTOR_WALLET",
		},
		cli.StringFlag{
			Name:  addressFlag,
			Usage: "Address of the sender account in the wallet (default account is used if not set)",
		},
		cli.StringFlag{
			Name:   passwordFlag,
			Usage:  "Password of the sender account",
			EnvVar: "DISTRIBUTOR_WALLET_PASSWORD",
		},
		cli.StringFlag{
			Name:   contractFlag,
			Usage:  "Address or hash (LE) of the Distributor contract",
			EnvVar: "DISTRIBUTOR_CONTRACT",
		},
		cli.DurationFlag{
			Name:  timeoutFlag,
			Usage: "Timeout of the network operations",
			Value: time.Minute,
		},
		cli.BoolFlag{
			Name:  debugFlag,
			Usage: "Enable debug logging",
		},
	}
	app.Commands = []cli.Command{
		deployCommand(),
		configCommand(),
		recordCommand(),
		limitCommand(),
		versionCommand(),
		depositCommand(),
		withdrawCommand(),
		setAmountCommand(),
		setControllerCommand(),
	}

	return app
}

func newLogger(c *cli.Context) (*zap.Logger, error) {
	if c.GlobalBool(debugFlag) {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}
