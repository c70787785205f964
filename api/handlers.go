package api

import (
	"github.com/yunanda/portfolio-backend/assets"
	"github.com/yunanda/portfolio-backend/database"
	"github.com/yunanda/portfolio-backend/services"
)

// initializeHandlers creates and returns all handlers organized in a routeHandlers struct
func initializeHandlers(database database.Database, store *assets.Store, chatbot *services.Chatbot) *routeHandlers {
	return &routeHandlers{
		blogHandler:    newBlogHandler(database.BlogRepo(), store),
		projectHandler: newProjectHandler(database.ProjectRepo(), store),
		skillHandler:   newSkillHandler(database.SkillRepo(), store),
		profileHandler: newProfileHandler(database.ProfileRepo(), store),
		contactHandler: newContactHandler(database.ContactRepo()),
		chatbotHandler: newChatbotHandler(chatbot),
	}
}
