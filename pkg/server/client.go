package server

import "strconv"

// clientScript returns the browser side of a navigation session: it
// reports location.hash on load and on hashchange, and writes rendered
// HTML into the mount element.
func clientScript(mountID string) string {
	return `
(function() {
    'use strict';

    var mount = document.getElementById(` + strconv.Quote(mountID) + `);
    var reconnectDelay = 1000;
    var maxReconnectDelay = 30000;
    var ws = null;

    function navigate() {
        if (ws && ws.readyState === WebSocket.OPEN) {
            ws.send(JSON.stringify({type: 'navigate', hash: location.hash}));
        }
    }

    function connect() {
        var protocol = location.protocol === 'https:' ? 'wss:' : 'ws:';
        ws = new WebSocket(protocol + '//' + location.host + '` + WebSocketPath + `');

        ws.onopen = function() {
            reconnectDelay = 1000;
            navigate();
        };

        ws.onmessage = function(e) {
            var msg;
            try {
                msg = JSON.parse(e.data);
            } catch (err) {
                return;
            }

            switch (msg.type) {
                case 'render':
                    mount.innerHTML = msg.html || '';
                    mount.setAttribute('data-route', msg.route || '');
                    break;

                case 'error':
                    console.error('[hashroute]', msg.code, msg.message);
                    break;
            }
        };

        ws.onclose = function() {
            setTimeout(function() {
                reconnectDelay = Math.min(reconnectDelay * 2, maxReconnectDelay);
                connect();
            }, reconnectDelay);
        };

        ws.onerror = function() {
            ws.close();
        };
    }

    window.addEventListener('hashchange', navigate);
    connect();
})();
`
}
