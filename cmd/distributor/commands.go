package main

import (
	"context"
	"fmt"
	"os"

	"github.com/nspcc-dev/distributor-contract/deploy"
	"github.com/nspcc-dev/distributor-contract/rpc/distributor"
	"github.com/nspcc-dev/neo-go/pkg/core/state"
	"github.com/nspcc-dev/neo-go/pkg/encoding/address"
	"github.com/nspcc-dev/neo-go/pkg/neorpc/result"
	"github.com/nspcc-dev/neo-go/pkg/util"
	"github.com/urfave/cli"
	"go.uber.org/zap"
)

func deployCommand() cli.Command {
	return cli.Command{
		Name:  "deploy",
		Usage: "Deploy the contract with the initial configuration",
		Flags: []cli.Flag{
			cli.StringFlag{Name: "dir", Usage: "Directory with contract.nef and manifest.json", Value: "contracts/distributor"},
			cli.StringFlag{Name: "controller", Usage: "Controller address (sender by default)"},
			cli.StringFlag{Name: "burn-sink", Usage: "Burn sink address"},
			cli.StringFlag{Name: "development-sink", Usage: "Development sink address"},
			cli.StringFlag{Name: "asset", Usage: "Accepted NEP-17 token hash (GAS by default)"},
			cli.StringFlag{Name: "amount", Usage: "Deposit amount in the smallest token units"},
		},
		Action: func(c *cli.Context) error {
			ctr, err := deploy.ReadContract(os.DirFS(c.String("dir")), ".")
			if err != nil {
				return fmt.Errorf("read contract: %w", err)
			}

			b, err := newRemoteBlockchain(c, true)
			if err != nil {
				return err
			}
			defer b.close()

			prm := deploy.Prm{
				Logger:     b.log,
				Blockchain: b.rpc,
				Actor:      b.actor,
				Contract:   ctr,
				Controller: b.actor.Sender(),
			}

			if s := c.String("controller"); s != "" {
				if prm.Controller, err = parseHash(s); err != nil {
					return fmt.Errorf("controller: %w", err)
				}
			}
			if prm.BurnSink, err = parseHash(c.String("burn-sink")); err != nil {
				return fmt.Errorf("burn sink: %w", err)
			}
			if prm.DevelopmentSink, err = parseHash(c.String("development-sink")); err != nil {
				return fmt.Errorf("development sink: %w", err)
			}
			if s := c.String("asset"); s != "" {
				if prm.Asset, err = parseHash(s); err != nil {
					return fmt.Errorf("asset: %w", err)
				}
			}
			if prm.DepositAmount, err = parseAmount(c.String("amount")); err != nil {
				return err
			}

			ctx, cancel := context.WithTimeout(context.Background(), c.GlobalDuration(timeoutFlag))
			defer cancel()

			addr, err := deploy.Deploy(ctx, prm)
			if err != nil {
				return err
			}

			fmt.Fprintln(c.App.Writer, addr.StringLE())
			return nil
		},
	}
}

func configCommand() cli.Command {
	return readCommand("config", "Print contract configuration", func(c *cli.Context, r *distributor.ContractReader) error {
		cfg, err := r.GetConfig()
		if err != nil {
			return err
		}
		fmt.Fprintf(c.App.Writer, "Controller:       %s\n", address.Uint160ToString(cfg.Controller))
		fmt.Fprintf(c.App.Writer, "Burn sink:        %s\n", address.Uint160ToString(cfg.BurnSink))
		fmt.Fprintf(c.App.Writer, "Development sink: %s\n", address.Uint160ToString(cfg.DevelopmentSink))
		fmt.Fprintf(c.App.Writer, "Asset:            %s\n", cfg.Asset.StringLE())
		fmt.Fprintf(c.App.Writer, "Deposit amount:   %s\n", cfg.DepositAmount)
		return nil
	})
}

func recordCommand() cli.Command {
	return readCommand("record", "Print amounts accumulated in the buckets", func(c *cli.Context, r *distributor.ContractReader) error {
		rec, err := r.GetRecord()
		if err != nil {
			return err
		}
		fmt.Fprintf(c.App.Writer, "Burn:        %s\n", rec.BurnTotal)
		fmt.Fprintf(c.App.Writer, "Jackpot:     %s\n", rec.JackpotTotal)
		fmt.Fprintf(c.App.Writer, "Development: %s\n", rec.DevelopmentTotal)
		return nil
	})
}

func limitCommand() cli.Command {
	return readCommand("limit", "Print deposit amount and its split", func(c *cli.Context, r *distributor.ContractReader) error {
		amount, err := r.GetDepositLimit()
		if err != nil {
			return err
		}
		s := distributor.Split(amount)
		fmt.Fprintf(c.App.Writer, "Deposit amount: %s\n", amount)
		fmt.Fprintf(c.App.Writer, "  burn:         %s\n", s.Burn)
		fmt.Fprintf(c.App.Writer, "  jackpot:      %s\n", s.Jackpot)
		fmt.Fprintf(c.App.Writer, "  development:  %s\n", s.Development)
		fmt.Fprintf(c.App.Writer, "  unassigned:   %s\n", s.Remainder)
		return nil
	})
}

func versionCommand() cli.Command {
	return readCommand("version", "Print version of the deployed contract", func(c *cli.Context, r *distributor.ContractReader) error {
		v, err := r.Version()
		if err != nil {
			return err
		}
		fmt.Fprintln(c.App.Writer, v)
		return nil
	})
}

func depositCommand() cli.Command {
	return writeCommand("deposit", "Deposit the configured amount of the configured asset", nil,
		func(c *cli.Context, ctr *distributor.Contract) (util.Uint256, uint32, error) {
			return ctr.Deposit()
		})
}

func withdrawCommand() cli.Command {
	return writeCommand("withdraw", "Withdraw from the jackpot (controller only)",
		[]cli.Flag{
			cli.StringFlag{Name: "to", Usage: "Receiver address"},
			cli.StringFlag{Name: "amount", Usage: "Amount in the smallest token units"},
		},
		func(c *cli.Context, ctr *distributor.Contract) (util.Uint256, uint32, error) {
			to, err := parseHash(c.String("to"))
			if err != nil {
				return util.Uint256{}, 0, fmt.Errorf("receiver: %w", err)
			}
			amount, err := parseAmount(c.String("amount"))
			if err != nil {
				return util.Uint256{}, 0, err
			}
			return ctr.Withdraw(to, amount)
		})
}

func setAmountCommand() cli.Command {
	return writeCommand("set-amount", "Change deposit amount (controller only)",
		[]cli.Flag{
			cli.StringFlag{Name: "amount", Usage: "New deposit amount in the smallest token units"},
		},
		func(c *cli.Context, ctr *distributor.Contract) (util.Uint256, uint32, error) {
			amount, err := parseAmount(c.String("amount"))
			if err != nil {
				return util.Uint256{}, 0, err
			}
			return ctr.SetDepositAmount(amount)
		})
}

func setControllerCommand() cli.Command {
	return writeCommand("set-controller", "Pass control over the contract (controller only)",
		[]cli.Flag{
			cli.StringFlag{Name: "controller", Usage: "New controller address"},
		},
		func(c *cli.Context, ctr *distributor.Contract) (util.Uint256, uint32, error) {
			h, err := parseHash(c.String("controller"))
			if err != nil {
				return util.Uint256{}, 0, fmt.Errorf("controller: %w", err)
			}
			return ctr.SetController(h)
		})
}

func readCommand(name, usage string, f func(*cli.Context, *distributor.ContractReader) error) cli.Command {
	return cli.Command{
		Name:  name,
		Usage: usage,
		Action: func(c *cli.Context) error {
			b, err := newRemoteBlockchain(c, false)
			if err != nil {
				return err
			}
			defer b.close()

			r, err := b.reader(c)
			if err != nil {
				return err
			}

			return distributor.CheckFault(f(c, r))
		},
	}
}

func writeCommand(name, usage string, flags []cli.Flag, f func(*cli.Context, *distributor.Contract) (util.Uint256, uint32, error)) cli.Command {
	return cli.Command{
		Name:  name,
		Usage: usage,
		Flags: flags,
		Action: func(c *cli.Context) error {
			b, err := newRemoteBlockchain(c, true)
			if err != nil {
				return err
			}
			defer b.close()

			ctr, err := b.contract(c)
			if err != nil {
				return err
			}

			txHash, vub, err := f(c, ctr)
			res, err := b.await(c, txHash, vub, err)
			if err != nil {
				return err
			}

			logPayouts(b.log, res)
			return nil
		},
	}
}

func logPayouts(log *zap.Logger, res *state.AppExecResult) {
	payouts, err := distributor.PayoutEventsFromApplicationLog(applicationLog(res))
	if err != nil {
		log.Warn("failed to parse Payout notifications", zap.Error(err))
		return
	}

	for _, p := range payouts {
		log.Info("payout",
			zap.String("action", p.Action),
			zap.String("to", address.Uint160ToString(p.To)),
			zap.Stringer("amount", p.Amount))
	}
}

func applicationLog(res *state.AppExecResult) *result.ApplicationLog {
	if res == nil {
		return nil
	}
	return &result.ApplicationLog{
		Container:  res.Container,
		Executions: []state.Execution{res.Execution},
	}
}
