package model

// 所有模型的统一导入点
// 用于 AutoMigrate
var AllModels = []interface{}{
	&Conversation{},
	&Message{},
	&ToolCall{},
	&Attachment{},
	&SOP{},
	&Project{},
	&ProjectTask{},
	&Expense{},
	&Initiative{},
	&Contact{},
	&Deal{},
	&Invoice{},
	&User{},
	&AuthToken{},
	&StoredFile{},
}
