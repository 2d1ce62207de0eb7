package model_test

import (
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/m-mizutani/warden/pkg/domain/model"
)

func commitWithRefs(sha string, refs ...string) model.CommitRecord {
	msg := "title for " + sha + "\n\n"
	for _, ref := range refs {
		msg += ref + "\n"
	}
	return model.CommitRecord{SHA: sha, Message: msg}
}

func TestSeries_SharedBugRefs(t *testing.T) {
	const (
		shared = "BugLink: https://bugs.launchpad.net/bugs/1000"
		extraA = "BugLink: https://bugs.launchpad.net/bugs/2000"
		extraB = "BugLink: https://bugs.launchpad.net/bugs/3000"
	)

	t.Run("shared reference survives intersection", func(t *testing.T) {
		s := model.NewSeries([]model.CommitRecord{
			commitWithRefs("aaa", shared, extraA),
			commitWithRefs("bbb", shared, extraB),
		})
		gt.Equal(t, s.SharedBugRefs(), []string{shared})
	})

	t.Run("disjoint references intersect to empty", func(t *testing.T) {
		s := model.NewSeries([]model.CommitRecord{
			commitWithRefs("aaa", extraA),
			commitWithRefs("bbb", extraB),
		})
		gt.Number(t, len(s.SharedBugRefs())).Equal(0)
	})

	t.Run("intersection is order-independent", func(t *testing.T) {
		records := []model.CommitRecord{
			commitWithRefs("aaa", shared, extraA),
			commitWithRefs("bbb", shared, extraB),
			commitWithRefs("ccc", shared),
		}
		forward := model.NewSeries(records)

		reversed := model.NewSeries([]model.CommitRecord{records[2], records[1], records[0]})

		gt.Equal(t, forward.SharedBugRefs(), reversed.SharedBugRefs())
	})

	t.Run("empty series", func(t *testing.T) {
		s := model.NewSeries(nil)
		gt.Number(t, s.Len()).Equal(0)
		gt.Number(t, len(s.SharedBugRefs())).Equal(0)
	})
}
