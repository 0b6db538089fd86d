// Comando facturacion: calculadora de líneas y facturación recurrente desde la terminal.
//
//	facturacion line --price 19.99 --tax 15 --qty 3 --discount 12.5
//	facturacion recurring due
//	facturacion recurring bill
package main

import (
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/shopspring/decimal"
	"github.com/urfave/cli/v2"

	"github.com/RosaQuijije/FacturacionWeb/internal/application/billing"
	"github.com/RosaQuijije/FacturacionWeb/internal/application/dto"
	"github.com/RosaQuijije/FacturacionWeb/internal/domain/entity"
	"github.com/RosaQuijije/FacturacionWeb/internal/infrastructure/gateway"
	"github.com/RosaQuijije/FacturacionWeb/pkg/config"
	"github.com/RosaQuijije/FacturacionWeb/pkg/logger"
	"github.com/RosaQuijije/FacturacionWeb/pkg/money"
)

func main() {
	if err := newApp(os.Stdout, nil).Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// newApp arma la CLI. recurring nil construye el caso de uso desde la configuración.
func newApp(out io.Writer, recurring func() (*billing.RecurringUseCase, error)) *cli.App {
	if recurring == nil {
		recurring = recurringFromConfig
	}
	return &cli.App{
		Name:   "facturacion",
		Usage:  "calculadora de facturas y facturación mensual de servicios",
		Writer: out,
		Commands: []*cli.Command{
			{
				Name:  "line",
				Usage: "calcula descuento, subtotal, IVA y total de una línea",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "price", Usage: "precio unitario", Required: true},
					&cli.StringFlag{Name: "tax", Usage: "IVA (0 o 15)", Value: "15"},
					&cli.IntFlag{Name: "qty", Usage: "cantidad", Value: 1},
					&cli.StringFlag{Name: "discount", Usage: "porcentaje de descuento", Value: "0"},
					&cli.BoolFlag{Name: "service", Usage: "servicio (cantidad fija en 1)"},
				},
				Action: lineAction,
			},
			{
				Name:  "recurring",
				Usage: "servicios recurrentes del mes en curso",
				Subcommands: []*cli.Command{
					{
						Name:  "due",
						Usage: "lista los servicios facturables hoy",
						Action: func(c *cli.Context) error {
							uc, err := recurring()
							if err != nil {
								return err
							}
							list, err := uc.Billable(c.Context)
							if err != nil {
								return err
							}
							w := tabwriter.NewWriter(c.App.Writer, 0, 0, 2, ' ', 0)
							fmt.Fprintln(w, "ID\tCLIENTE\tDESDE\tHASTA\tTOTAL")
							for _, s := range list {
								fmt.Fprintf(w, "%d\t%d\t%s\t%s\t%s\n", s.ID, s.ClientID, s.From, s.To, money.Format(s.Total))
							}
							return w.Flush()
						},
					},
					{
						Name:  "bill",
						Usage: "factura todos los servicios pendientes del mes",
						Action: func(c *cli.Context) error {
							uc, err := recurring()
							if err != nil {
								return err
							}
							res, err := uc.BillDue(c.Context)
							if err != nil {
								return err
							}
							for _, r := range res.Results {
								if r.Error != "" {
									fmt.Fprintf(c.App.Writer, "servicio %d: ERROR %s\n", r.ServiceID, r.Error)
									continue
								}
								fmt.Fprintf(c.App.Writer, "servicio %d: factura %d\n", r.ServiceID, r.InvoiceID)
							}
							fmt.Fprintf(c.App.Writer, "facturados: %d, fallidos: %d\n", res.Billed, res.Failed)
							if res.Failed > 0 {
								return fmt.Errorf("%d servicios sin facturar", res.Failed)
							}
							return nil
						},
					},
				},
			},
		},
	}
}

func lineAction(c *cli.Context) error {
	price, err := decimal.NewFromString(c.String("price"))
	if err != nil {
		return fmt.Errorf("--price: %w", err)
	}
	tax, err := decimal.NewFromString(c.String("tax"))
	if err != nil {
		return fmt.Errorf("--tax: %w", err)
	}
	discount, err := decimal.NewFromString(c.String("discount"))
	if err != nil {
		return fmt.Errorf("--discount: %w", err)
	}
	in := dto.LineCalcRequest{UnitPrice: price, TaxPercent: tax, Quantity: c.Int("qty"), DiscountPercent: discount}
	if c.Bool("service") {
		in.Kind = entity.CatalogKindService
	}
	line, err := billing.CalculateLine(in)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(c.App.Writer, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintf(w, "Cantidad\t%d\t\n", line.Quantity)
	fmt.Fprintf(w, "Precio unitario\t%s\t\n", money.Format(line.UnitPrice))
	fmt.Fprintf(w, "Descuento (%s)\t%s\t\n", money.Percent(line.DiscountPercent), money.Format(line.DiscountAmount))
	fmt.Fprintf(w, "Subtotal\t%s\t\n", money.Format(line.Subtotal))
	fmt.Fprintf(w, "IVA (%s)\t%s\t\n", money.Percent(line.TaxPercent), money.Format(line.TaxAmount))
	fmt.Fprintf(w, "Total\t%s\t\n", money.Format(line.LineTotal))
	return w.Flush()
}

func recurringFromConfig() (*billing.RecurringUseCase, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.Log.Level, Output: os.Stderr})
	repos := gateway.Open(cfg.Backend)
	return billing.NewRecurringUseCase(repos.Services, repos.Invoices, log, nil), nil
}
