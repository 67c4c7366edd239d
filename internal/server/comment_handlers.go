// Package server contains the HTTP handlers for the API endpoints.
package server

import (
	"teamdex/internal/models"
	"teamdex/internal/repository"
	"teamdex/internal/service"

	"github.com/gofiber/fiber/v2"
)

const defaultCommentPageSize = 10

// GetComments handles GET /api/:kind/:targetId/comments (public with optional auth)
// @Summary List comments on a team or Pokémon
// @Description Ordering: newest (default), oldest, upvotes, downvotes; ties break by id
// @Tags comments
// @Produce json
// @Param kind path string true "team or pokemon"
// @Param targetId path int true "Target ID"
// @Param ordering query string false "newest, oldest, upvotes or downvotes"
// @Param page query int false "1-based page"
// @Param page_size query int false "Page size (default 10, max 100)"
// @Success 200 {array} models.Comment
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /{kind}/{targetId}/comments [get]
func (s *Server) GetComments(c *fiber.Ctx) error {
	ctx := c.UserContext()

	kind, err := s.parseKind(c)
	if err != nil {
		return nil
	}
	targetID, err := s.parseID(c, "targetId")
	if err != nil {
		return nil
	}
	viewerID, _ := s.optionalUserID(c)
	pagination := parsePageParams(c, defaultCommentPageSize)

	comments, err := s.commentService.ListComments(ctx, service.ListCommentsInput{
		ViewerID:   viewerID,
		TargetKind: kind,
		TargetID:   targetID,
		Ordering:   c.Query("ordering", repository.OrderNewest),
		Limit:      pagination.Limit,
		Offset:     pagination.Offset,
	})
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(comments)
}

// CreateComment handles POST /api/:kind/:targetId/comments (protected)
// @Summary Comment on a team or Pokémon
// @Tags comments
// @Accept json
// @Produce json
// @Param kind path string true "team or pokemon"
// @Param targetId path int true "Target ID"
// @Param request body object{content=string} true "Comment"
// @Success 201 {object} models.Comment
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /{kind}/{targetId}/comments [post]
func (s *Server) CreateComment(c *fiber.Ctx) error {
	ctx := c.UserContext()
	userID := c.Locals("userID").(uint)

	kind, err := s.parseKind(c)
	if err != nil {
		return nil
	}
	targetID, err := s.parseID(c, "targetId")
	if err != nil {
		return nil
	}

	var req struct {
		Content string `json:"content"`
	}
	if parseErr := c.BodyParser(&req); parseErr != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	created, err := s.commentService.CreateComment(ctx, service.CreateCommentInput{
		UserID:     userID,
		TargetKind: kind,
		TargetID:   targetID,
		Content:    req.Content,
	})
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(created)
}

// UpdateComment handles PATCH /api/comments/:id (author only)
// @Summary Update a comment
// @Tags comments
// @Accept json
// @Produce json
// @Param id path int true "Comment ID"
// @Param request body object{content=string} true "New content"
// @Success 200 {object} models.Comment
// @Failure 403 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /comments/{id} [patch]
func (s *Server) UpdateComment(c *fiber.Ctx) error {
	ctx := c.UserContext()
	userID := c.Locals("userID").(uint)

	commentID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req struct {
		Content string `json:"content"`
	}
	if parseErr := c.BodyParser(&req); parseErr != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	updated, err := s.commentService.UpdateComment(ctx, service.UpdateCommentInput{
		UserID:    userID,
		CommentID: commentID,
		Content:   req.Content,
	})
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(updated)
}

// DeleteComment handles DELETE /api/comments/:id (author only)
// @Summary Delete a comment
// @Description Deleting a comment also removes its votes
// @Tags comments
// @Param id path int true "Comment ID"
// @Success 204
// @Failure 403 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /comments/{id} [delete]
func (s *Server) DeleteComment(c *fiber.Ctx) error {
	ctx := c.UserContext()
	userID := c.Locals("userID").(uint)

	commentID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if _, err := s.commentService.DeleteComment(ctx, service.DeleteCommentInput{
		UserID:    userID,
		CommentID: commentID,
	}); err != nil {
		return respondDomainError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
