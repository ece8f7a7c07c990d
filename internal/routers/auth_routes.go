package routers

import (
	"github.com/go-chi/chi/v5"

	"github.com/dhruvi159/Voxhire-Project/internal/handlers"
	"github.com/dhruvi159/Voxhire-Project/internal/middleware"
	"github.com/dhruvi159/Voxhire-Project/internal/models"
)

func AuthRoutes(router *chi.Mux, authHandler *handlers.AuthHandler, jwtSecret string) {
	router.Route("/api/auth", func(r chi.Router) {
		r.With(middleware.ValidateRequest[models.RegisterRequest]()).Post("/register", authHandler.Register)
		r.With(middleware.ValidateRequest[models.VerifyOTPRequest]()).Post("/verify-otp", authHandler.VerifyOTP)
		r.With(middleware.ValidateRequest[models.LoginRequest]()).Post("/login", authHandler.Login)

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAuth(jwtSecret))
			r.Get("/profile", authHandler.Profile)
			r.Post("/upload-profile-pic", authHandler.UploadProfilePicture)
		})
	})
}
