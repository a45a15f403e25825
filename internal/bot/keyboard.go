package bot

import (
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/vkotenko/fintrack/internal/model"
)

const (
	buttonAddIncome  = "💰 Add Income"
	buttonAddExpense = "💸 Add Expense"
	buttonList       = "📋 Transactions"
	buttonSummary    = "📊 Summary"
	buttonExport     = "📤 Export"
	buttonCharts     = "📈 Charts"
)

func (b *Bot) mainKeyboard() tgbotapi.ReplyKeyboardMarkup {
	return tgbotapi.NewReplyKeyboard(
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(buttonAddIncome),
			tgbotapi.NewKeyboardButton(buttonAddExpense),
		),
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(buttonList),
			tgbotapi.NewKeyboardButton(buttonSummary),
		),
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(buttonExport),
			tgbotapi.NewKeyboardButton(buttonCharts),
		),
	)
}

// categoryKeyboard offers the closed suggestion list for the chosen type.
func (b *Bot) categoryKeyboard(txType model.TransactionType) tgbotapi.InlineKeyboardMarkup {
	var buttons [][]tgbotapi.InlineKeyboardButton
	for _, category := range model.CategoriesFor(txType) {
		buttons = append(buttons, []tgbotapi.InlineKeyboardButton{
			tgbotapi.NewInlineKeyboardButtonData(category, "category_"+category),
		})
	}
	return tgbotapi.NewInlineKeyboardMarkup(buttons...)
}

// deleteKeyboard puts a delete button under a listed transaction.
func (b *Bot) deleteKeyboard(id string) tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🗑 Delete", "delete_"+id),
		),
	)
}
