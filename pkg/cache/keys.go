package cache

// Cache key layout: tixly:{module}:{view}:{identifier}

const keyPrefix = "tixly"

const (
	keyMerchantStats        = keyPrefix + ":merchant:stats:uuid:"        // + merchant-id
	keyMerchantTransactions = keyPrefix + ":merchant:transactions:uuid:" // + merchant-id
	keyNotificationsUnread  = keyPrefix + ":notifications:unread:uuid:"  // + user-id
)

func MerchantStatsKey(merchantID string) string {
	return keyMerchantStats + merchantID
}

func MerchantTransactionsKey(merchantID string) string {
	return keyMerchantTransactions + merchantID
}

func UnreadCountKey(userID string) string {
	return keyNotificationsUnread + userID
}

// Invalidation patterns
const (
	PatternMerchantAll      = keyPrefix + ":merchant:*"
	PatternNotificationsAll = keyPrefix + ":notifications:*"
)

func MerchantPattern(merchantID string) string {
	return keyPrefix + ":merchant:*:uuid:" + merchantID
}
