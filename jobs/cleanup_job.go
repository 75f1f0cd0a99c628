package jobs

import (
	"log"
	"time"

	"github.com/prepwise/mock_interview/database"
	"github.com/prepwise/mock_interview/websocket"
)

const captureIdleDeadline = 15 * time.Minute

// PruneSupersededAnswers deletes answer rows that lost a replace race: rows
// sharing a (mock_id_ref, question) key with a newer row. Feedback reads
// already hide these via dedup; this removes them at rest.
func PruneSupersededAnswers() {
	log.Println("Running job: PruneSupersededAnswers...")

	result := database.DB.Exec(`
		DELETE FROM answer_records a
		USING answer_records b
		WHERE a.mock_id_ref = b.mock_id_ref
		  AND a.question = b.question
		  AND (a.created_at < b.created_at
		       OR (a.created_at = b.created_at AND a.id < b.id))`)

	if result.Error != nil {
		log.Printf("Error pruning superseded answers: %v", result.Error)
		return
	}

	if result.RowsAffected == 0 {
		log.Println("No superseded answers found.")
		return
	}
	log.Printf("Pruned %d superseded answer row(s).", result.RowsAffected)
}

// ExpireIdleCaptures drops live capture sessions that went quiet without
// being ended.
func ExpireIdleCaptures() {
	websocket.ExpireIdleCaptures(captureIdleDeadline)
}
