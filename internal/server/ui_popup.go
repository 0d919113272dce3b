package server

import (
	"encoding/json"
	"strings"

	"github.com/samqfs/samqfsui/internal/popup"
)

// renderPopupJS fills the popup helper with the preset table and the usage
// errors, so browser sizes and server-side plans cannot drift apart.
// defaultServer is used when neither the caller nor the top-level page names
// a server.
func renderPopupJS(appRoot, defaultServer string) string {
	presets := map[string]popup.Dimensions{}
	for _, p := range popup.Presets() {
		presets[p.Name] = p.Dimensions
	}
	presetsJSON, _ := json.Marshal(presets)
	rootJSON, _ := json.Marshal(appRoot)
	serverJSON, _ := json.Marshal(defaultServer)
	missingTarget, _ := json.Marshal(popup.ErrMissingTarget.Error())
	missingWindow, _ := json.Marshal(popup.ErrMissingWindowName.Error())
	return strings.NewReplacer(
		"__SAMQFS_PRESETS__", string(presetsJSON),
		"__SAMQFS_APP_ROOT__", string(rootJSON),
		"__SAMQFS_DEFAULT_SERVER__", string(serverJSON),
		"__SAMQFS_ERR_MISSING_TARGET__", string(missingTarget),
		"__SAMQFS_ERR_MISSING_WINDOW__", string(missingWindow),
		"__SAMQFS_POPUP_PARAM__", popup.PopupQueryParam,
		"__SAMQFS_SERVER_PARAM__", popup.ServerQueryParam,
		"__SAMQFS_SESSION_FIELD__", popup.PageSessionField,
	).Replace(uiPopupJS)
}

const uiPopupJS = `
const samqfsPopupPresets = __SAMQFS_PRESETS__;
const samqfsAppRoot = __SAMQFS_APP_ROOT__;
const samqfsDefaultServer = __SAMQFS_DEFAULT_SERVER__;
const samqfsPopupWindows = {};

function samqfsAmbientServer() {
  try {
    if (window.top && window.top.serverName) return String(window.top.serverName);
  } catch (e) {
    // cross-origin top frame
  }
  return samqfsDefaultServer;
}

function samqfsPopupURL(targetPath, serverName, extraParams) {
  let url = samqfsAppRoot + targetPath + '?__SAMQFS_POPUP_PARAM__=true&__SAMQFS_SERVER_PARAM__=' + (serverName || '');
  (extraParams || []).forEach(function (p) {
    p = String(p || '').replace(/^&/, '');
    if (p) url += '&' + p;
  });
  return url;
}

function samqfsPopupFeatures(preset) {
  const dims = samqfsPopupPresets[String(preset || '').toLowerCase().replace(/-/g, '_')] || samqfsPopupPresets.normal;
  const left = Math.max(Math.floor((screen.availWidth - dims.width) / 2), 0);
  const top = Math.max(Math.floor((screen.availHeight - dims.height) / 2), 0);
  return 'height=' + dims.height + ',width=' + dims.width + ',top=' + top + ',left=' + left + ',scrollbars=yes,resizable=yes';
}

function samqfsLaunchPopup(targetPath, windowName, serverName, preset, extraParams, openerForm) {
  if (!String(targetPath || '').trim()) throw new Error(__SAMQFS_ERR_MISSING_TARGET__);
  if (!String(windowName || '').trim()) throw new Error(__SAMQFS_ERR_MISSING_WINDOW__);
  if (!String(serverName || '').trim()) serverName = samqfsAmbientServer();
  const url = samqfsPopupURL(targetPath, serverName, extraParams);
  const win = window.open(url, windowName, samqfsPopupFeatures(preset));
  if (!win) return null;
  samqfsPopupWindows[windowName] = { win: win, form: openerForm || '' };
  win.focus();
  return win;
}

function samqfsCloseAndReturn(formName, targetField, refreshCommand, payload) {
  if (window.opener && !window.opener.closed) {
    window.opener.postMessage({
      type: 'samqfs-popup-return',
      formName: formName,
      targetField: targetField,
      command: refreshCommand,
      payload: payload,
    }, window.location.origin);
  }
  window.close();
}

function samqfsInstallReturnListener(form) {
  let submitted = false;
  window.addEventListener('message', function (ev) {
    if (ev.origin !== window.location.origin) return;
    const msg = ev.data || {};
    if (msg.type !== 'samqfs-popup-return' || submitted) return;
    if (!form || form.name !== msg.formName) return;
    const field = form.elements[msg.targetField];
    if (field) field.value = msg.payload;
    const session = form.elements['__SAMQFS_SESSION_FIELD__'];
    const base = String(form.action || '').split('?')[0];
    const params = [];
    if (msg.command) params.push(msg.command);
    if (session && session.value) params.push('__SAMQFS_SESSION_FIELD__=' + session.value);
    form.action = params.length ? base + '?' + params.join('&') : base;
    submitted = true;
    form.submit();
  });
}
`
