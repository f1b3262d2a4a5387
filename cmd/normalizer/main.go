/*
 * @author: sun977
 * @date: 2026.02.14
 * @description: NeoNorm 程序入口
 */

package main

func main() {
	Execute()
}
