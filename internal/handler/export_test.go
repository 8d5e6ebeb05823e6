package handler

// Export for testing
type RecordResponse = recordResponse
type RecordStatusResponse = recordStatusResponse
type StoreResponse = storeResponse
type StorePingResponse = storePingResponse

var WriteServiceError = writeServiceError
var WriteError = writeError
