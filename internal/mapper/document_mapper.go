package mapper

import (
	"advocate-portal-client/internal/dto"
	"advocate-portal-client/internal/entity"
)

type DocumentMapper struct{}

func NewDocumentMapper() *DocumentMapper {
	return &DocumentMapper{}
}

func (m *DocumentMapper) ToEntity(res dto.DocumentResponse) entity.Document {
	return entity.Document{
		Id:         res.Id,
		Filename:   res.Filename,
		UploadDate: res.UploadDate,
		Status:     entity.ParseDocumentStatus(res.Status),
		Summary:    res.LlmSummary,
		CloudPath:  res.CloudPath,
	}
}

// ToEntities preserves the server's ordering; the client never reorders the
// collection.
func (m *DocumentMapper) ToEntities(responses []dto.DocumentResponse) []entity.Document {
	docs := make([]entity.Document, 0, len(responses))
	for _, res := range responses {
		docs = append(docs, m.ToEntity(res))
	}
	return docs
}
