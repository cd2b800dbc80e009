package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/quickbite/kiosk/internal/cart"
	"github.com/quickbite/kiosk/internal/catalog"
	"github.com/quickbite/kiosk/internal/client"
	"github.com/quickbite/kiosk/internal/config"
	"github.com/quickbite/kiosk/internal/logx"
	"github.com/quickbite/kiosk/internal/money"
)

// itemFlags collects repeated -item product[:qty[:opt,opt]] values.
type itemFlags []string

func (f *itemFlags) String() string     { return strings.Join(*f, " ") }
func (f *itemFlags) Set(v string) error { *f = append(*f, v); return nil }

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}
	logx.Init(cfg.Environment)

	var items itemFlags
	api := flag.String("api", cfg.APIURL, "Kiosk API base URL")
	total := flag.String("total", "", "Total to submit (default: priced from the built-in menu)")
	timeout := flag.Duration("timeout", 5*time.Second, "Request timeout")
	flag.Var(&items, "item", "Cart line as product[:qty[:opt,opt]], repeatable")
	flag.Parse()

	if len(items) == 0 {
		items = itemFlags{"b1:1"}
		logx.Warn().Msg("no -item given, submitting one Classic Cheeseburger")
	}

	c, err := buildCart(catalog.Default(), items)
	if err != nil {
		logx.Fatal().Err(err).Msg("build cart")
	}

	amount := c.Total()
	if *total != "" {
		if amount, err = money.Parse(*total); err != nil {
			logx.Fatal().Err(err).Str("total", *total).Msg("parse total")
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	conf, err := client.New(*api, *timeout).SubmitOrder(ctx, client.LinesFromCart(c.Items()), amount)
	if err != nil {
		logx.Fatal().Err(err).Msg("submit order")
	}

	fmt.Printf("Order #%s placed (%s), total %s\n", conf.OrderNumber, conf.Status, money.Display(conf.TotalPrice))
}

func buildCart(menu *catalog.Catalog, args []string) (*cart.Cart, error) {
	c := cart.New()
	for _, arg := range args {
		parts := strings.SplitN(arg, ":", 3)

		p, err := menu.Product(parts[0])
		if err != nil {
			return nil, err
		}

		qty := 1
		if len(parts) > 1 && parts[1] != "" {
			if qty, err = strconv.Atoi(parts[1]); err != nil || qty < 1 {
				return nil, fmt.Errorf("%s: quantity must be a positive integer", arg)
			}
		}

		var selected []catalog.ProductOption
		if len(parts) > 2 {
			for _, id := range strings.Split(parts[2], ",") {
				selected = append(selected, catalog.ProductOption{ID: strings.TrimSpace(id)})
			}
		}

		item, err := c.AddItem(p, selected)
		if err != nil {
			return nil, err
		}
		c.UpdateQuantity(item.CartID, qty-1)
	}
	return c, nil
}
