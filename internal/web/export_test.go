package web

// Export for testing
var PopFlashes = popFlashes
var PushFlashSuccess = pushFlashSuccess
var PushFlashError = pushFlashError

const FlashSuccess = flashSuccess
const FlashError = flashError
