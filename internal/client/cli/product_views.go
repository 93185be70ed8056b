package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/paulikeo/mercadito/internal/models"
)

// listView renders the catalog. The server returns the same set to every
// caller; the private layout only frames it differently by marking the
// caller's own rows.
func (a *App) listView(ctx context.Context) {
	products, err := a.api.ListProducts(ctx)
	if err != nil {
		a.notify(err.Error())
		return
	}
	if len(products) == 0 {
		fmt.Fprintln(a.out, "no products yet")
		return
	}

	for _, p := range products {
		mark := ""
		if a.layout == LayoutPrivate && p.UserID == a.sess.User().ID {
			mark = " (yours)"
		}
		creator := ""
		if p.Creator != nil {
			creator = fmt.Sprintf(" — by %s <%s>", p.Creator.FullName, p.Creator.Email)
		}
		fmt.Fprintf(a.out, "#%d %s  $%.2f  stock %d%s%s\n", p.ID, p.Name, p.Price, p.Stock, creator, mark)
	}
}

func (a *App) showView(ctx context.Context, args []string) {
	id, ok := a.argID(args)
	if !ok {
		return
	}
	p, err := a.api.GetProduct(ctx, id)
	if err != nil {
		a.notify(err.Error())
		return
	}
	fmt.Fprintf(a.out, "#%d %s\n  price: $%.2f\n  stock: %d\n", p.ID, p.Name, p.Price, p.Stock)
	if p.Creator != nil {
		fmt.Fprintf(a.out, "  creator: %s <%s>\n", p.Creator.FullName, p.Creator.Email)
	}
}

// productForm collects name/price/stock. Defaults (for edit) are kept when
// the user submits an empty line, so updates always send all three fields.
func (a *App) productForm(defaults *models.Product) (name string, price float64, stock int64, ok bool) {
	namePrompt, pricePrompt, stockPrompt := "name", "price", "stock"
	if defaults != nil {
		namePrompt = fmt.Sprintf("name [%s]", defaults.Name)
		pricePrompt = fmt.Sprintf("price [%.2f]", defaults.Price)
		stockPrompt = fmt.Sprintf("stock [%d]", defaults.Stock)
	}

	name, err := promptLine(a.reader, a.out, namePrompt)
	if err != nil {
		return "", 0, 0, false
	}
	priceRaw, err := promptLine(a.reader, a.out, pricePrompt)
	if err != nil {
		return "", 0, 0, false
	}
	stockRaw, err := promptLine(a.reader, a.out, stockPrompt)
	if err != nil {
		return "", 0, 0, false
	}

	if defaults != nil {
		if name == "" {
			name = defaults.Name
		}
		if priceRaw == "" {
			priceRaw = strconv.FormatFloat(defaults.Price, 'f', -1, 64)
		}
		if stockRaw == "" {
			stockRaw = strconv.FormatInt(defaults.Stock, 10)
		}
	}

	if name == "" || priceRaw == "" || stockRaw == "" {
		a.notify("all fields are required")
		return "", 0, 0, false
	}

	price, err = strconv.ParseFloat(priceRaw, 64)
	if err != nil {
		a.notify("price must be a number")
		return "", 0, 0, false
	}
	stock, err = strconv.ParseInt(stockRaw, 10, 64)
	if err != nil {
		a.notify("stock must be an integer")
		return "", 0, 0, false
	}
	return name, price, stock, true
}

func (a *App) addProductView(ctx context.Context) {
	name, price, stock, ok := a.productForm(nil)
	if !ok {
		return
	}
	p, err := a.api.CreateProduct(ctx, a.sess.Token(), name, price, stock)
	if err != nil {
		a.notify(err.Error())
		return
	}
	a.notify(fmt.Sprintf("product created (#%d)", p.ID))
}

func (a *App) editProductView(ctx context.Context, args []string) {
	id, ok := a.argID(args)
	if !ok {
		return
	}
	current, err := a.api.GetProduct(ctx, id)
	if err != nil {
		a.notify(err.Error())
		return
	}

	name, price, stock, ok := a.productForm(&current)
	if !ok {
		return
	}
	if err := a.api.UpdateProduct(ctx, a.sess.Token(), id, name, price, stock); err != nil {
		a.notify(err.Error())
		return
	}
	a.notify("product updated")
}

func (a *App) deleteProductView(ctx context.Context, args []string) {
	id, ok := a.argID(args)
	if !ok {
		return
	}
	confirm, err := promptLine(a.reader, a.out, fmt.Sprintf("delete product #%d? [y/N]", id))
	if err != nil || confirm != "y" {
		return
	}
	if err := a.api.DeleteProduct(ctx, a.sess.Token(), id); err != nil {
		a.notify(err.Error())
		return
	}
	a.notify("product deleted")
}
