package fetch

// Version is the current version of the fetch module.
const Version = "1.0.0"
