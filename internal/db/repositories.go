package db

import "gorm.io/gorm"

type Repositories struct {
	Users        *UserRepository
	Profiles     *ProfileRepository
	Cycles       *CycleRepository
	HealthLogs   *HealthLogRepository
	ChatMessages *ChatMessageRepository
}

func NewRepositories(database *gorm.DB) *Repositories {
	return &Repositories{
		Users:        NewUserRepository(database),
		Profiles:     NewProfileRepository(database),
		Cycles:       NewCycleRepository(database),
		HealthLogs:   NewHealthLogRepository(database),
		ChatMessages: NewChatMessageRepository(database),
	}
}
