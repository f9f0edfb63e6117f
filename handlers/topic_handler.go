package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"topic-board/helper"
	"topic-board/models"
	"topic-board/services"
)

type TopicHandler struct {
	topicService   services.TopicService
	omikujiService *services.OmikujiService
	helper         *helper.HTTPHelper
}

func NewTopicHandler(topicService services.TopicService, omikujiService *services.OmikujiService, h *helper.HTTPHelper) *TopicHandler {
	return &TopicHandler{topicService: topicService, omikujiService: omikujiService, helper: h}
}

func (h *TopicHandler) ListTopics(c *gin.Context) {
	var params models.TopicListParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	topics, err := h.topicService.ListTopics(params.Limit)
	if err != nil {
		c.JSON(h.helper.GetStatusCode(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"topics": topics})
}

func (h *TopicHandler) GetTopic(c *gin.Context) {
	topic, html, err := h.topicService.GetTopic(c.Param("id"))
	if err != nil {
		c.JSON(h.helper.GetStatusCode(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"id":         topic.ID,
		"slug":       topic.Slug,
		"title":      topic.Title,
		"body":       topic.Body,
		"html":       html,
		"created_at": topic.CreatedAt,
		"updated_at": topic.UpdatedAt,
	})
}

func (h *TopicHandler) CreateTopic(c *gin.Context) {
	var req models.CreateTopicRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	id, err := h.topicService.CreateTopic(req)
	if err != nil {
		c.JSON(h.helper.GetStatusCode(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"id": id})
}

func (h *TopicHandler) DeleteTopic(c *gin.Context) {
	if err := h.topicService.DeleteTopic(c.Param("id")); err != nil {
		c.JSON(h.helper.GetStatusCode(err), gin.H{"error": err.Error()})
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *TopicHandler) SearchTopics(c *gin.Context) {
	var params models.TopicListParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if params.Query == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "query parameter q is required"})
		return
	}

	topics, err := h.topicService.SearchTopics(params.Query, params.Limit)
	if err != nil {
		c.JSON(h.helper.GetStatusCode(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"topics": topics})
}

func (h *TopicHandler) PreviewTopic(c *gin.Context) {
	var req models.PreviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	html, err := h.topicService.Preview(req.Body)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"html": html})
}

func (h *TopicHandler) Omikuji(c *gin.Context) {
	id, ok, err := h.omikujiService.PickRandomTopic()
	if err != nil {
		c.JSON(h.helper.GetStatusCode(err), gin.H{"error": err.Error()})
		return
	}
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "no topics"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"id": id})
}
