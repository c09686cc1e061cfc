package rank

import "gamecraft-engine/internal/domain"

type Scorer interface {
	Score(pos domain.JobPosition) (score int, tags []string)
}
