package gemini

import (
	"hash/fnv"

	"github.com/xavierca1/ligue-crm/internal/entity"
)

// HeuristicAnalysis é o analisador local usado quando a API não está
// configurada ou falha. Determinístico para o mesmo (outcome, leadName).
func HeuristicAnalysis(outcome, leadName string) *entity.CallAnalysis {
	base := outcomeBaseline(outcome)

	// Variação estável por lead, só para as notas não saírem todas iguais.
	h := fnv.New32a()
	h.Write([]byte(leadName))
	jitter := int(h.Sum32() % 11) // 0..10

	score := base.score + jitter - 5
	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}

	return &entity.CallAnalysis{
		Score:      score,
		Adherence:  base.adherence,
		Confidence: base.confidence,
		Sentiment:  base.sentiment,
		Takeaways:  base.takeaways,
	}
}

type baseline struct {
	score      int
	adherence  int
	confidence string
	sentiment  string
	takeaways  []string
}

func outcomeBaseline(outcome string) baseline {
	switch outcome {
	case entity.OutcomeAppointmentSet:
		return baseline{
			score: 90, adherence: 85,
			confidence: entity.ConfidenceHigh,
			sentiment:  entity.SentimentPositive,
			takeaways:  []string{"Meeting booked", "Confirm the appointment one day before"},
		}
	case entity.OutcomeInterested:
		return baseline{
			score: 70, adherence: 75,
			confidence: entity.ConfidenceMedium,
			sentiment:  entity.SentimentPositive,
			takeaways:  []string{"Prospect showed interest", "Follow up within 48 hours"},
		}
	case entity.OutcomeNotInterested:
		return baseline{
			score: 40, adherence: 70,
			confidence: entity.ConfidenceMedium,
			sentiment:  entity.SentimentNegative,
			takeaways:  []string{"Objection not overcome", "Revisit in a future campaign"},
		}
	case entity.OutcomeGatekeeperBlocked:
		return baseline{
			score: 30, adherence: 60,
			confidence: entity.ConfidenceLow,
			sentiment:  entity.SentimentNeutral,
			takeaways:  []string{"Try a different time of day", "Look for a direct line to the decision maker"},
		}
	case entity.OutcomeNoAnswer:
		return baseline{
			score: 10, adherence: 0,
			confidence: entity.ConfidenceLow,
			sentiment:  entity.SentimentNeutral,
			takeaways:  []string{"No contact made", "Schedule a retry"},
		}
	default:
		return baseline{
			score: 50, adherence: 50,
			confidence: entity.ConfidenceLow,
			sentiment:  entity.SentimentNeutral,
		}
	}
}
