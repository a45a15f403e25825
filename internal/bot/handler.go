package bot

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/vkotenko/fintrack/internal/export"
	"github.com/vkotenko/fintrack/internal/model"
	"github.com/vkotenko/fintrack/internal/projection"
)

const listLimit = 10

func (b *Bot) handleCommand(message *tgbotapi.Message) error {
	switch message.Command() {
	case "start":
		b.handleStart(message)
	case "list":
		b.handleList(message)
	case "summary":
		b.handleSummary(message)
	case "export":
		b.handleExport(message)
	case "charts":
		b.handleCharts(message)
	}
	return nil
}

func (b *Bot) handleStart(message *tgbotapi.Message) {
	msg := tgbotapi.NewMessage(message.Chat.ID,
		"Welcome to your finance tracker! 💰\n\n"+
			"• Record income and expenses\n"+
			"• Browse and delete transactions\n"+
			"• See your totals and charts\n"+
			"• Export everything as CSV or PDF\n\n"+
			"Pick an action:")
	msg.ReplyMarkup = b.mainKeyboard()
	b.send(msg)
}

func (b *Bot) handleMessage(message *tgbotapi.Message) error {
	switch message.Text {
	case buttonAddIncome:
		b.startAdd(message, model.TypeIncome)
		return nil
	case buttonAddExpense:
		b.startAdd(message, model.TypeExpense)
		return nil
	case buttonList:
		b.handleList(message)
		return nil
	case buttonSummary:
		b.handleSummary(message)
		return nil
	case buttonExport:
		b.handleExport(message)
		return nil
	case buttonCharts:
		b.handleCharts(message)
		return nil
	}

	state := b.states[message.Chat.ID]
	if state == nil || !state.AwaitingEntry {
		return nil
	}
	b.finishAdd(message, state)
	return nil
}

func (b *Bot) startAdd(message *tgbotapi.Message, txType model.TransactionType) {
	b.states[message.Chat.ID] = &chatState{TransactionType: txType}

	msg := tgbotapi.NewMessage(message.Chat.ID, "Choose a category:")
	msg.ReplyMarkup = b.categoryKeyboard(txType)
	b.send(msg)
}

func (b *Bot) handleCallback(callback *tgbotapi.CallbackQuery) error {
	// Acknowledge the tap so the client stops its spinner.
	if _, err := b.api.Request(tgbotapi.NewCallback(callback.ID, "")); err != nil {
		logger.Error().Err(err).Msg("answering callback")
	}

	chatID := callback.Message.Chat.ID

	switch {
	case strings.HasPrefix(callback.Data, "category_"):
		category := strings.TrimPrefix(callback.Data, "category_")
		state := b.states[chatID]
		if state == nil {
			return nil
		}
		state.Category = category
		state.AwaitingEntry = true
		b.sendText(chatID,
			"Enter the amount and a description, optionally with a date:\n"+
				"250 groceries\n"+
				"250 groceries 2025-07-01")

	case strings.HasPrefix(callback.Data, "delete_"):
		id := strings.TrimPrefix(callback.Data, "delete_")
		owner := ownerFor(callback.From)
		if err := b.gw.Remove(context.Background(), owner, id); err != nil {
			b.sendError(chatID, err)
			return nil
		}
		// The mirror is already up to date; no need to reload for the count.
		b.sendText(chatID, fmt.Sprintf("Transaction deleted ✅ (%d left)", len(b.gw.Snapshot(owner))))
	}

	return nil
}

// finishAdd parses "amount description [date]" and submits the draft. The
// gateway validates; parse failures surface as validation errors.
func (b *Bot) finishAdd(message *tgbotapi.Message, state *chatState) {
	parts := strings.Fields(message.Text)

	draft := model.Draft{
		Type:     state.TransactionType,
		Category: state.Category,
		Date:     time.Now().Format(model.DateFormat),
	}

	if len(parts) > 0 {
		draft.Amount = parts[0]
		parts = parts[1:]
	}
	if len(parts) > 0 {
		last := parts[len(parts)-1]
		if _, err := time.Parse(model.DateFormat, last); err == nil {
			draft.Date = last
			parts = parts[:len(parts)-1]
		}
	}
	draft.Description = strings.Join(parts, " ")

	created, err := b.gw.Add(context.Background(), ownerFor(message.From), draft)
	if err != nil {
		b.sendError(message.Chat.ID, err)
		return
	}

	delete(b.states, message.Chat.ID)
	b.sendText(message.Chat.ID, fmt.Sprintf("Saved %s of %s in %s ✅",
		created.Type, created.Amount.StringFixed(2), created.Category))
}

func (b *Bot) handleList(message *tgbotapi.Message) {
	transactions, err := b.load(message)
	if err != nil {
		b.sendError(message.Chat.ID, err)
		return
	}
	if len(transactions) == 0 {
		b.sendText(message.Chat.ID, "No transactions yet.")
		return
	}

	list := projection.List(transactions,
		model.FilterOptions{Type: model.FilterAll},
		model.SortOptions{Field: model.SortByDate, Order: model.Descending})
	if len(list) > listLimit {
		list = list[:listLimit]
	}

	for _, tx := range list {
		sign := "+"
		if tx.Type == model.TypeExpense {
			sign = "-"
		}
		msg := tgbotapi.NewMessage(message.Chat.ID, fmt.Sprintf("%s  %s%s  %s — %s",
			tx.Date, sign, tx.Amount.StringFixed(2), tx.Category, tx.Description))
		msg.ReplyMarkup = b.deleteKeyboard(tx.ID)
		b.send(msg)
	}
}

// handleSummary reports global totals over the full collection, independent
// of any list filtering.
func (b *Bot) handleSummary(message *tgbotapi.Message) {
	transactions, err := b.load(message)
	if err != nil {
		b.sendError(message.Chat.ID, err)
		return
	}

	summary := projection.Summarize(transactions)
	b.sendText(message.Chat.ID, fmt.Sprintf(
		"📊 Summary\n\n"+
			"💰 Income: %s\n"+
			"💸 Expenses: %s\n"+
			"💵 Balance: %s\n"+
			"🧾 Transactions: %d",
		summary.TotalIncome.StringFixed(2),
		summary.TotalExpenses.StringFixed(2),
		summary.Balance.StringFixed(2),
		summary.Count))
}

func (b *Bot) handleExport(message *tgbotapi.Message) {
	transactions, err := b.load(message)
	if err != nil {
		b.sendError(message.Chat.ID, err)
		return
	}
	if len(transactions) == 0 {
		b.sendText(message.Chat.ID, "Nothing to export yet.")
		return
	}

	var csvBuf, pdfBuf bytes.Buffer
	if err := export.WriteCSV(&csvBuf, transactions); err != nil {
		b.sendError(message.Chat.ID, err)
		return
	}
	if err := export.WritePDF(&pdfBuf, transactions); err != nil {
		b.sendError(message.Chat.ID, err)
		return
	}

	b.send(tgbotapi.NewDocument(message.Chat.ID, tgbotapi.FileBytes{
		Name:  export.Filename("csv"),
		Bytes: csvBuf.Bytes(),
	}))
	b.send(tgbotapi.NewDocument(message.Chat.ID, tgbotapi.FileBytes{
		Name:  export.Filename("pdf"),
		Bytes: pdfBuf.Bytes(),
	}))
}

func (b *Bot) handleCharts(message *tgbotapi.Message) {
	transactions, err := b.load(message)
	if err != nil {
		b.sendError(message.Chat.ID, err)
		return
	}

	balance, err := b.charts.BalanceHistory(transactions)
	if err != nil {
		b.sendError(message.Chat.ID, err)
		return
	}
	breakdown, err := b.charts.ExpenseBreakdown(transactions)
	if err != nil {
		b.sendError(message.Chat.ID, err)
		return
	}
	if balance == nil && breakdown == nil {
		b.sendText(message.Chat.ID, "Not enough data to chart yet.")
		return
	}

	if balance != nil {
		b.send(tgbotapi.NewPhoto(message.Chat.ID, tgbotapi.FileBytes{Name: "balance.png", Bytes: balance}))
	}
	if breakdown != nil {
		b.send(tgbotapi.NewPhoto(message.Chat.ID, tgbotapi.FileBytes{Name: "categories.png", Bytes: breakdown}))
	}
}

func (b *Bot) load(message *tgbotapi.Message) ([]model.Transaction, error) {
	return b.gw.Load(context.Background(), ownerFor(message.From))
}
