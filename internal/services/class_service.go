package services

import (
	"context"
	"sort"

	"github.com/Samychowdhury01/melody-makers-academy-server/internal/models"
)

type approvedClassLister interface {
	ListApproved(ctx context.Context) ([]models.Class, error)
}

// ClassService serves the public class catalog.
type ClassService struct {
	classes approvedClassLister
}

func NewClassService(classes approvedClassLister) *ClassService {
	return &ClassService{classes: classes}
}

// ListApproved returns approved classes with the most enrolled first. The
// ordering is enforced here as well as in the query so it survives a
// repository swap.
func (s *ClassService) ListApproved(ctx context.Context) ([]models.Class, error) {
	classes, err := s.classes.ListApproved(ctx)
	if err != nil {
		return nil, err
	}

	sort.SliceStable(classes, func(i, j int) bool {
		return classes[i].TotalEnrolled > classes[j].TotalEnrolled
	})
	return classes, nil
}
