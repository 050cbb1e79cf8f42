package results

import (
	"encoding/csv"
	"errors"
	"fmt"
	"os"
)

// AskHeader is the header of the single-question log.
var AskHeader = []string{ColQuestion, ColRAGAnswer, ColOGAnswer}

// AppendAsk appends one unjudged question to the ask log, writing the header on create.
func AppendAsk(path, question, ragAnswer, ogAnswer string) (err error) {
	_, statErr := os.Stat(path)
	exists := statErr == nil
	if statErr != nil && !errors.Is(statErr, os.ErrNotExist) {
		return fmt.Errorf("stat ask log: %w", statErr)
	}
	file, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open ask log: %w", err)
	}
	defer func() {
		if closeErr := file.Close(); err == nil && closeErr != nil {
			err = fmt.Errorf("close ask log: %w", closeErr)
		}
	}()
	writer := csv.NewWriter(file)
	if !exists {
		if err := writer.Write(AskHeader); err != nil {
			return fmt.Errorf("write ask header: %w", err)
		}
	}
	if err := writer.Write([]string{question, ragAnswer, ogAnswer}); err != nil {
		return fmt.Errorf("write ask row: %w", err)
	}
	writer.Flush()
	return writer.Error()
}
