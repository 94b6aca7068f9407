package file

// QuotaUsage is the derived storage consumption for one owner.
type QuotaUsage struct {
	UsedBytes   int64   `json:"used_bytes"`
	QuotaBytes  int64   `json:"quota_bytes"`
	UsedPercent float64 `json:"used_percent"`
}

// ProjectQuota sums sizes over the owner's files. Trashed files still count:
// their blobs stay in the store until a hard delete. UsedPercent is capped
// at 100.
func ProjectQuota(files []*File, ownerID int64, quotaBytes int64) QuotaUsage {
	var used int64
	for _, f := range files {
		if f.OwnerID == ownerID {
			used += f.SizeBytes
		}
	}

	usage := QuotaUsage{UsedBytes: used, QuotaBytes: quotaBytes}
	if quotaBytes > 0 {
		pct := float64(used) / float64(quotaBytes) * 100
		if pct > 100 {
			pct = 100
		}
		usage.UsedPercent = pct
	}
	return usage
}
