package view

import (
	"fmt"
	"strings"

	"storefront-core/internal/basket"
	"storefront-core/internal/catalog"
	"storefront-core/internal/order"
	"storefront-core/internal/utils"

	"go.uber.org/zap"
)

// Headless views render model state to plain strings and log through zap.
// They back the CLI binary and double as test doubles for the presenter.

type HeadlessCatalogView struct {
	log     *zap.Logger
	entries []*catalog.Entry
	count   int
	err     string
	loading bool
}

func NewHeadlessCatalogView(log *zap.Logger) *HeadlessCatalogView {
	return &HeadlessCatalogView{log: log}
}

func (v *HeadlessCatalogView) RenderProducts(entries []*catalog.Entry) {
	v.entries = entries
	v.loading = false
	v.err = ""
	v.log.Info("catalog rendered", zap.Int("products", len(entries)))
}

func (v *HeadlessCatalogView) UpdateBasketCount(count int) {
	v.count = count
	v.log.Debug("basket counter updated", zap.Int("count", count))
}

func (v *HeadlessCatalogView) ShowLoading() {
	v.loading = true
}

func (v *HeadlessCatalogView) ShowError(message string) {
	v.loading = false
	v.err = message
	v.log.Warn("storefront error shown", zap.String("message", message))
}

func (v *HeadlessCatalogView) Render() string {
	if v.loading {
		return "loading..."
	}
	if v.err != "" {
		return "error: " + v.err
	}

	var b strings.Builder
	fmt.Fprintf(&b, "basket (%d)\n", v.count)
	for _, entry := range v.entries {
		marker := " "
		if entry.InBasket {
			marker = "*"
		}
		fmt.Fprintf(&b, "%s %s [%s] %s\n",
			marker, entry.Title,
			utils.FormatCategory(string(entry.Category)),
			utils.FormatPrice(entry.Price))
	}
	return b.String()
}

func (v *HeadlessCatalogView) Destroy() { v.entries = nil }

type HeadlessProductView struct {
	log   *zap.Logger
	entry *catalog.Entry
}

func NewHeadlessProductView(log *zap.Logger) *HeadlessProductView {
	return &HeadlessProductView{log: log}
}

func (v *HeadlessProductView) SetProduct(entry *catalog.Entry) {
	v.entry = entry
}

func (v *HeadlessProductView) Render() string {
	if v.entry == nil {
		return ""
	}
	action := "add to basket"
	if v.entry.InBasket {
		action = "remove from basket"
	}
	return fmt.Sprintf("%s\n%s\n%s\n[%s]",
		v.entry.Title, v.entry.Description,
		utils.FormatPrice(v.entry.Price), action)
}

func (v *HeadlessProductView) Destroy() { v.entry = nil }

type HeadlessBasketView struct {
	log      *zap.Logger
	snapshot basket.Snapshot
}

func NewHeadlessBasketView(log *zap.Logger) *HeadlessBasketView {
	return &HeadlessBasketView{log: log}
}

func (v *HeadlessBasketView) UpdateBasket(snapshot basket.Snapshot) {
	v.snapshot = snapshot
}

func (v *HeadlessBasketView) Render() string {
	if v.snapshot.Count == 0 {
		return "basket is empty"
	}
	var b strings.Builder
	for i, item := range v.snapshot.Items {
		fmt.Fprintf(&b, "%d. %s %s\n", i+1, item.Title, utils.FormatPrice(item.Price))
	}
	fmt.Fprintf(&b, "total: %s", utils.FormatPrice(&v.snapshot.Total))
	return b.String()
}

func (v *HeadlessBasketView) Destroy() { v.snapshot = basket.Snapshot{} }

type HeadlessOrderFormView struct {
	log   *zap.Logger
	step  order.Step
	valid bool
	errs  []order.FieldError
}

func NewHeadlessOrderFormView(log *zap.Logger) *HeadlessOrderFormView {
	return &HeadlessOrderFormView{log: log, step: order.StepDelivery}
}

func (v *HeadlessOrderFormView) SetStep(step order.Step) {
	v.step = step
	v.errs = nil
}

func (v *HeadlessOrderFormView) SetValid(valid bool) {
	v.valid = valid
	if valid {
		v.errs = nil
	}
}

func (v *HeadlessOrderFormView) SetErrors(errs []order.FieldError) {
	v.errs = errs
}

func (v *HeadlessOrderFormView) Render() string {
	var b strings.Builder
	fmt.Fprintf(&b, "checkout step: %s (valid: %t)\n", v.step, v.valid)
	for _, fe := range v.errs {
		fmt.Fprintf(&b, "%s: %s\n", fe.Field, fe.Message)
	}
	return b.String()
}

func (v *HeadlessOrderFormView) Destroy() { v.errs = nil }

type HeadlessSuccessView struct {
	log   *zap.Logger
	total float64
}

func NewHeadlessSuccessView(log *zap.Logger) *HeadlessSuccessView {
	return &HeadlessSuccessView{log: log}
}

func (v *HeadlessSuccessView) SetTotal(total float64) {
	v.total = total
}

func (v *HeadlessSuccessView) Render() string {
	return fmt.Sprintf("order placed\ncharged %s", utils.FormatPrice(&v.total))
}

func (v *HeadlessSuccessView) Destroy() {}

// HeadlessModal logs modal transitions and remembers the current content.
type HeadlessModal struct {
	log     *zap.Logger
	open    bool
	content string
}

func NewHeadlessModal(log *zap.Logger) *HeadlessModal {
	return &HeadlessModal{log: log}
}

func (m *HeadlessModal) Open() {
	m.open = true
	m.log.Debug("modal opened")
}

func (m *HeadlessModal) Close() {
	m.open = false
	m.content = ""
	m.log.Debug("modal closed")
}

func (m *HeadlessModal) SetContent(content string) {
	m.content = content
}

func (m *HeadlessModal) IsOpen() bool { return m.open }
func (m *HeadlessModal) Content() string { return m.content }
