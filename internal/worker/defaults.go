package worker

import "time"

// DefaultPruneBuffer keeps about one week of blocks unpruned.
const DefaultPruneBuffer = 1008

const (
	sleepDuration     = 5 * time.Second
	longSleepDuration = 1 * time.Minute

	defaultPruneWorkers    = 8
	defaultDefragmentEvery = 10000

	headerSyncBatch = 2000

	blockLookahead            = 500
	blockRequestBatchSize     = 16
	blockRequestFlushInterval = 1 * time.Second
	blockRequestRPS           = 50
	blockRequestWorkers       = 4
)
