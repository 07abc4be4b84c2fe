package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/pingup/network/pkg/internal/services"
	"github.com/pingup/network/pkg/internal/uploader"
)

// Handler carries the stores every route is served from.
type Handler struct {
	Accounts  *services.AccountService
	Posts     *services.PostService
	Stories   *services.StoryService
	Reactions *services.ReactionService
	Comments  *services.CommentService
	Friends   *services.FriendService
	Uploader  uploader.Uploader
}

// LocalUploadRoot reports the directory and url prefix to serve when uploads stay on this host.
func (v *Handler) LocalUploadRoot() (string, string) {
	if local, ok := v.Uploader.(*uploader.LocalUploader); ok {
		return local.Root, local.URLPrefix
	}
	return "", ""
}

func MapControllers(app *fiber.App, baseURL string, h *Handler) {
	api := app.Group(baseURL)
	{
		api.Get("/", getGreeting)

		api.Post("/user", h.createUser)
		api.Get("/user", h.getUser)
		api.Put("/user", h.editUser)
		api.Get("/user/uid/:uid", h.getUserByExternalID)

		api.Get("/all-stories", h.listStory)
		api.Post("/stories/upload", h.createStory)

		api.Post("/create-post", h.createPost)
		api.Get("/posts", h.listPost)
		api.Get("/posts/:postId", h.getPost)

		api.Get("/feeds-love/:loveId", h.getReactionStatus)
		api.Post("/feeds-love", h.toggleReaction)

		api.Get("/feeds-comments/:postId", h.listComment)
		api.Post("/feeds-comments", h.createComment)

		api.Get("/friends-request/incoming", h.listIncomingFriendRequest)
		friends := api.Group("/friend-request")
		{
			friends.Get("/status", h.getFriendRequestStatus)
			friends.Post("/send", h.sendFriendRequest)
			friends.Delete("/cancel", h.cancelFriendRequest)
			friends.Put("/respond", h.respondFriendRequest)
		}
	}
}

func getGreeting(c *fiber.Ctx) error {
	return c.SendString("Hello NetWork")
}
