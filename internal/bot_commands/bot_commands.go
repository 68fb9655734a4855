package bot_commands

const ( // текстовые команды
	Start    = "/start"
	Notify   = "notify"
	Currency = "currency"
	Profile  = "profile"
)

const ( // CallbackQuery команды персонала, за командой следует id заказа
	Accept = "accept"
	Cancel = "cancel"
)
