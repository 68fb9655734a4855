package auth

type BotAuth struct {
	admins map[int64]bool
}

// New - список администраторов берётся из конфигурации (ADMIN_IDS)
func New(adminIDs []int64) *BotAuth {
	admins := make(map[int64]bool, len(adminIDs))
	for _, id := range adminIDs {
		admins[id] = true
	}
	return &BotAuth{admins: admins}
}

// Проверяет, является ли пользователь админом
func (a *BotAuth) IsAdmin(userID int64) bool {
	if a == nil || a.admins == nil {
		return false
	}
	return a.admins[userID]
}
