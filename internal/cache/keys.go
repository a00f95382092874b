package cache

import "fmt"

// Key layout:
//   presence:room:{docID}         ZSet<userID, expireAtUnix> — online members
//   presence:room:names:{docID}   Hash<userID, username>
//   presence:cursor:{docID}:{userID}  last-seen cursor JSON blob
//
// No cluster hash-tagging here: redis.UniversalClient targets a single
// node in this deployment, and GetDocuments needs to recover docID by
// trimming a plain prefix, which a {docID:...} tag would only complicate.
const (
	keyRoomFmt  = "presence:room:%s"
	keyNamesFmt = "presence:room:names:%s"
)

func roomKey(docID string) string  { return fmt.Sprintf(keyRoomFmt, docID) }
func namesKey(docID string) string { return fmt.Sprintf(keyNamesFmt, docID) }
