package service

// Export for testing
var IsValidURL = isValidURL
