package exporter

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/xfsops/prjquota/pkg/quota"
)

func registerAPI(router *gin.Engine, stores []*quota.Store) {
	byMount := make(map[string]*quota.Store, len(stores))
	mounts := make([]string, 0, len(stores))
	for _, store := range stores {
		byMount[store.MountPoint()] = store
		mounts = append(mounts, store.MountPoint())
	}

	api := router.Group("/api/v1")

	api.GET("/mounts", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"mounts": mounts})
	})

	api.GET("/quotas", func(c *gin.Context) {
		mountPoint := c.Query("mount")
		if mountPoint == "" && len(mounts) == 1 {
			mountPoint = mounts[0]
		}

		store, ok := byMount[mountPoint]
		if !ok {
			c.JSON(http.StatusNotFound, gin.H{"error": "unknown mount point", "mount": mountPoint})
			return
		}

		snapshot, err := store.Quotas()
		if err != nil {
			c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
			return
		}

		records := make([]quota.ProjectQuota, 0, len(snapshot))
		for _, id := range snapshot.ProjectIDs() {
			records = append(records, snapshot[id])
		}
		c.JSON(http.StatusOK, gin.H{"mount": mountPoint, "quotas": records})
	})
}
