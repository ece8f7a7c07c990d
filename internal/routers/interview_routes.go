package routers

import (
	"github.com/go-chi/chi/v5"

	"github.com/dhruvi159/Voxhire-Project/internal/handlers"
	"github.com/dhruvi159/Voxhire-Project/internal/middleware"
	"github.com/dhruvi159/Voxhire-Project/internal/models"
)

// InterviewRoutes mounts session management, AI and coding-round endpoints.
// Every route requires a bearer token.
func InterviewRoutes(router *chi.Mux, interviewHandler *handlers.InterviewHandler, aiHandler *handlers.AIHandler, codingHandler *handlers.CodingHandler, jwtSecret string) {
	router.Route("/api/interview", func(r chi.Router) {
		r.Use(middleware.RequireAuth(jwtSecret))

		r.Post("/upload-candidates", interviewHandler.UploadCandidates)
		r.With(middleware.ValidateRequest[models.CreateInterviewRequest]()).Post("/create-interview", interviewHandler.CreateInterview)
		r.Get("/interviews", interviewHandler.ListInterviews)
		r.Get("/candidate-interviews", interviewHandler.CandidateInterviews)
		r.Get("/current/{id}", interviewHandler.CurrentInterview)

		r.With(middleware.ValidateRequest[models.GenerateQuestionsRequest]()).Post("/generate-questions", aiHandler.GenerateQuestions)
		r.With(middleware.ValidateRequest[models.EvaluateRequest]()).Post("/evaluate", aiHandler.Evaluate)

		r.With(middleware.ValidateRequest[models.ExecuteRequest]()).Post("/execute", codingHandler.Execute)
		r.With(middleware.ValidateRequest[models.ValidateCodeRequest]()).Post("/validate", codingHandler.Validate)
		r.With(middleware.ValidateRequest[models.GenerateCodingQuestionsRequest]()).Post("/generate-coding-questions", codingHandler.GenerateCodingQuestions)
		r.Get("/get-next-question", codingHandler.NextQuestion)
		r.Post("/get-next-question", codingHandler.NextQuestion)
		r.Post("/finish-interview", codingHandler.Finish)
	})
}
