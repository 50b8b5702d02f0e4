package monitor

import (
	"os"

	"journal-management-api/config"

	"github.com/gin-gonic/gin"
)

func logsToken() string {
	token := os.Getenv("LOGS_ACCESS_TOKEN")
	if token == "" {
		token = "secret-token"
	}
	return token
}

// RegisterLogsRoute exposes the backend log file behind a query token.
func RegisterLogsRoute(router *gin.Engine) {
	router.GET("/logs", func(c *gin.Context) {
		if c.Query("token") != logsToken() {
			c.JSON(401, gin.H{"error": "Unauthorized"})
			return
		}
		logData, err := os.ReadFile(config.LogFilePath())
		if err != nil {
			c.JSON(500, gin.H{"error": "Unable to read log"})
			return
		}
		c.Data(200, "text/plain; charset=utf-8", logData)
	})
}

// RegisterMonitorPage serves a small self-contained ops page polling the
// health endpoint and the log tail.
func RegisterMonitorPage(router *gin.Engine) {
	router.GET("/monitor", func(c *gin.Context) {
		c.Data(200, "text/html; charset=utf-8", []byte(`<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="UTF-8" />
  <meta name="viewport" content="width=device-width, initial-scale=1.0" />
  <title>Journal API Monitor</title>
  <style>
    body {
      background: #10121a;
      color: #dde1ec;
      font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, sans-serif;
      margin: 0;
      padding: 24px;
    }
    .container { max-width: 1100px; margin: 0 auto; }
    h1 { font-size: 1.8rem; color: #8ea2ff; margin-bottom: 1.5rem; }
    .card {
      background: rgba(255, 255, 255, 0.04);
      border: 1px solid rgba(255, 255, 255, 0.1);
      border-radius: 12px;
      padding: 1.25rem;
      margin-bottom: 1.5rem;
    }
    #status { font-size: 1.1rem; font-weight: 600; }
    #logs {
      background: rgba(0, 0, 0, 0.35);
      border-radius: 8px;
      padding: 1rem;
      max-height: 480px;
      overflow-y: auto;
      white-space: pre-wrap;
      font-family: 'Monaco', 'Consolas', monospace;
      font-size: 0.85rem;
      line-height: 1.5;
    }
    button {
      padding: 0.5rem 1rem;
      background: #5a6cf0;
      color: #fff;
      border: none;
      border-radius: 6px;
      cursor: pointer;
      font-weight: 600;
    }
    button.paused { background: #d9566c; }
  </style>
</head>
<body>
  <div class="container">
    <h1>Journal API Monitor</h1>
    <div class="card"><div id="status">Status: checking...</div></div>
    <div class="card">
      <div style="display:flex;justify-content:space-between;align-items:center;margin-bottom:0.75rem;">
        <strong>Server Logs</strong>
        <button onclick="toggleLive()" id="toggleBtn">Pause</button>
      </div>
      <pre id="logs">Loading logs...</pre>
    </div>
  </div>
  <script>
    let liveLogs = true;
    const logsEl = document.getElementById('logs');
    const statusEl = document.getElementById('status');
    const toggleBtn = document.getElementById('toggleBtn');
    const token = new URLSearchParams(window.location.search).get('token') || 'secret-token';

    function fetchStatus() {
      fetch('/api/v1/health')
        .then(res => res.json())
        .then(data => { statusEl.textContent = 'Status: ' + (data.status === 'ok' ? 'online' : 'offline'); })
        .catch(() => { statusEl.textContent = 'Status: offline'; });
    }

    function fetchLogs() {
      if (!liveLogs) return;
      fetch('/logs?token=' + token)
        .then(res => res.text())
        .then(data => {
          logsEl.textContent = data;
          logsEl.scrollTop = logsEl.scrollHeight;
        });
    }

    function toggleLive() {
      liveLogs = !liveLogs;
      toggleBtn.textContent = liveLogs ? 'Pause' : 'Resume';
      toggleBtn.classList.toggle('paused', !liveLogs);
    }

    fetchStatus();
    fetchLogs();
    setInterval(fetchStatus, 5000);
    setInterval(fetchLogs, 5000);
  </script>
</body>
</html>`))
	})
}
