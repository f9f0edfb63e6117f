package services

import (
	"topic-board/repositories"
)

// OmikujiService surfaces one topic chosen uniformly at random. Thin
// composition over the active topic store; no state of its own.
type OmikujiService struct {
	topicRepo repositories.TopicRepository
}

func NewOmikujiService(topicRepo repositories.TopicRepository) *OmikujiService {
	return &OmikujiService{topicRepo: topicRepo}
}

// PickRandomTopic returns the chosen topic id, or ok=false when the store
// holds no topics.
func (s *OmikujiService) PickRandomTopic() (string, bool, error) {
	return s.topicRepo.RandomTopicID()
}
