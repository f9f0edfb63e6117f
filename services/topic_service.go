package services

import (
	"topic-board/helper"
	"topic-board/models"
	"topic-board/repositories"
)

type TopicService interface {
	ListTopics(limit int) ([]models.TopicSummary, error)
	// GetTopic returns the raw record plus its body rendered to sanitized
	// HTML. The store itself only ever holds raw markdown.
	GetTopic(id string) (*models.TopicDetail, string, error)
	CreateTopic(req models.CreateTopicRequest) (string, error)
	DeleteTopic(id string) error
	SearchTopics(query string, limit int) ([]models.TopicSummary, error)
	Preview(body string) (string, error)
}

type topicService struct {
	topicRepo repositories.TopicRepository
	renderer  *helper.MarkdownRenderer
}

func NewTopicService(topicRepo repositories.TopicRepository, renderer *helper.MarkdownRenderer) TopicService {
	return &topicService{topicRepo: topicRepo, renderer: renderer}
}

func (s *topicService) ListTopics(limit int) ([]models.TopicSummary, error) {
	return s.topicRepo.ListTopics(limit)
}

func (s *topicService) GetTopic(id string) (*models.TopicDetail, string, error) {
	topic, err := s.topicRepo.GetTopic(id)
	if err != nil {
		return nil, "", err
	}
	html, err := s.renderer.Render(topic.Body)
	if err != nil {
		return nil, "", err
	}
	return topic, html, nil
}

func (s *topicService) CreateTopic(req models.CreateTopicRequest) (string, error) {
	return s.topicRepo.CreateTopic(req.Title, req.Body)
}

func (s *topicService) DeleteTopic(id string) error {
	return s.topicRepo.DeleteTopic(id)
}

func (s *topicService) SearchTopics(query string, limit int) ([]models.TopicSummary, error) {
	return s.topicRepo.Search(query, limit)
}

func (s *topicService) Preview(body string) (string, error) {
	return s.renderer.Render(body)
}
